// Package fastxgz streams reads out of FASTA and FASTQ files, plain or
// gzip-compressed, and derives k-mers and k-mer hashes from them.
//
// Every stage is a lazy iter.Seq: nothing is read until it is pulled, and a
// single pass over the file is made.
//
// Iterating over the reads of a FASTA file:
//
//	reads, err := fastxgz.OpenFastaReads("test.fa")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer reads.Close()
//	for read := range reads.All() {
//		fmt.Println(string(read))
//	}
//
// Iterating over the hashes of the 31-mers of a gzipped FASTQ file:
//
//	reads, err := fastxgz.OpenFastqReads("test.fq.gz")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer reads.Close()
//	for h := range fastxgz.Hashes(fastxgz.Kmers(reads.All(), 31)) {
//		fmt.Println(h)
//	}
//
// A read error in the middle of a file panics with an error wrapping
// ErrLineIO; see RecoverIO.
package fastxgz
