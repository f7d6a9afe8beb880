package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"runtime"
	"runtime/pprof"
	"strings"
	"syscall"

	"go.uber.org/zap"
)

func main() {

	var cpuprofile = flag.String("cpuprofile", "", "write cpu profile to `file`")
	var memprofile = flag.String("memprofile", "", "write memory profile to `file`")
	var configFile = flag.String("configfile", "", "read configuration from `file`")

	defaults := defaultConfig()
	var inputs = flag.String("in", "", "comma-separated input `files` (\"-\" for stdin); extra arguments are inputs too")
	var output = flag.String("out", defaults.Output, "write records to `file` (gzipped if it ends in .gz)")
	var format = flag.String("format", defaults.Format, "input format: fasta, fasta-simple or fastq")
	var k = flag.Int("k", defaults.K, "k-mer length")
	var emit = flag.String("emit", defaults.Emit, "what to write: lines, reads, kmers, hashes or count")
	var hash = flag.String("hash", defaults.Hash, "hash function: xxh3 or xxh64")
	var threads = flag.Int("threads", defaults.Threads, "input files processed at once")
	var dropFinal = flag.Bool("drop-final-window", false, "skip the last k-mer of every read")

	flag.Parse()

	env, err := loadEnv()
	if err != nil {
		log.Fatal(err)
	}
	logger, err := newLogger(env.LogLevel, env.LogDev)
	if err != nil {
		log.Fatal("could not create logger: ", err)
	}
	defer logger.Sync()

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			logger.Fatal("could not create CPU profile", zap.Error(err))
		}
		defer f.Close() // error handling omitted for example
		if err := pprof.StartCPUProfile(f); err != nil {
			logger.Fatal("could not start CPU profile", zap.Error(err))
		}
		defer pprof.StopCPUProfile()
	}

	var config *Config
	if *configFile != "" {
		logger.Debug("reading configuration", zap.String("file", *configFile))
		config, err = readConfigFile(*configFile)
		if err != nil {
			logger.Fatal("could not read config file", zap.Error(err))
		}
	} else {
		config = &Config{
			Output:          *output,
			Format:          *format,
			K:               *k,
			Emit:            *emit,
			Hash:            *hash,
			Threads:         *threads,
			DropFinalWindow: *dropFinal,
		}
		if *inputs != "" {
			config.Inputs = strings.Split(*inputs, ",")
		}
		config.Inputs = append(config.Inputs, flag.Args()...)
	}
	config.applyEnv(env)
	if err := config.validate(); err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting",
		zap.Strings("inputs", config.Inputs),
		zap.String("format", config.Format),
		zap.Int("k", config.K),
		zap.Int("threads", config.Threads))
	if err := run(ctx, config, logger); err != nil {
		logger.Fatal("kmerhash failed", zap.Error(err))
	}
	logger.Info("done")

	if *memprofile != "" {
		f, err := os.Create(*memprofile)
		if err != nil {
			logger.Fatal("could not create memory profile", zap.Error(err))
		}
		defer f.Close() // error handling omitted for example
		runtime.GC()    // get up-to-date statistics
		if err := pprof.WriteHeapProfile(f); err != nil {
			logger.Fatal("could not write memory profile", zap.Error(err))
		}
	}

}
