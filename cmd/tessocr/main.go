package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/ironsheep/tesseract"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: tessocr [-l lang] input_file")
}

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("tessocr %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("tessocr - recognize text in an image via Tesseract OCR")
			fmt.Println()
			usage()
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  -l lang          Recognition language (e.g. eng, deu)")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			return
		}
	}

	args := os.Args[1:]
	var filename, lang string
	switch {
	case len(args) == 1:
		filename = args[0]
	case len(args) == 3 && args[0] == "-l":
		lang, filename = args[1], args[2]
	default:
		usage()
		os.Exit(2)
	}

	// Fail early with a clear message when the input is unreadable, before
	// the engine produces a less helpful one.
	f, err := os.Open(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Could not open file %q\n", filename)
		os.Exit(1)
	}
	f.Close()

	text, err := tesseract.ImageToString(filename, &tesseract.Options{Lang: lang})
	if err != nil {
		if errors.Is(err, tesseract.ErrNotFound) {
			fmt.Fprintf(os.Stderr, "%v\n", err)
		} else {
			fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		}
		os.Exit(1)
	}

	fmt.Println(text)
}
