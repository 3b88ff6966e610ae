package main

import (
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"strings"

	"github.com/op/go-logging"

	"github.com/chronos-tachyon/huffzip"
)

const progName = "huffzip"
const usageMessageRaw = `
Usage: huffzip [-debug] SUBCOMMAND...

Subcommands:
  compress SRC DST
	Compress the UTF-8 text file SRC into the new file DST.

  decompress SRC DST
	Decompress the file SRC, written by "compress", into the new file DST.

  table FILE
	Read the compressed file FILE and write its codebook and statistics to
	standard output.
`

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 64
)

var log = logging.MustGetLogger("huffzip/cmd")

var leveledLogBackend logging.LeveledBackend

func usageMessage() string {
	return strings.TrimLeft(usageMessageRaw, "\n")
}

func startLogging(w io.Writer) {
	backend := logging.NewLogBackend(w, progName+": ", 0)
	formatSpec := "%{level:-7s} %{module:-12s} | %{message}"
	formatter := logging.MustStringFormatter(formatSpec)
	formatted := logging.NewBackendFormatter(backend, formatter)
	leveled := logging.AddModuleLevel(formatted)
	leveled.SetLevel(logging.INFO, "")
	logging.SetBackend(leveled)
	leveledLogBackend = leveled
}

// usageError is returned when the command line itself is wrong.
type usageError struct {
	detail string
}

func (err usageError) Error() string {
	return err.detail
}

func usageErrorf(detailFmt string, detailArgs ...interface{}) error {
	return usageError{detail: fmt.Sprintf(detailFmt, detailArgs...)}
}

type argList struct {
	args []string
	i    int
}

func (al *argList) next(expected string) (string, error) {
	if al.i >= len(al.args) {
		return "", usageErrorf("not enough arguments; expected %s", expected)
	}
	arg := al.args[al.i]
	al.i++
	return arg, nil
}

func (al *argList) end() error {
	if al.i < len(al.args) {
		return usageErrorf("too many arguments at %d (\"%s\")", al.i, al.args[al.i])
	}
	return nil
}

func run(argv []string, stdout io.Writer, stderr io.Writer) int {
	startLogging(stderr)

	ourFlags := flag.NewFlagSet(progName, flag.ContinueOnError)
	ourFlags.SetOutput(ioutil.Discard)
	ourFlags.Usage = func() {}
	debug := ourFlags.Bool("debug", false, "log debugging detail to standard error")

	if err := ourFlags.Parse(argv); err != nil {
		if err == flag.ErrHelp {
			fmt.Fprint(stdout, usageMessage())
			return exitOK
		}
		fmt.Fprintf(stderr, "%s: %s\n%s", progName, err.Error(), usageMessage())
		return exitUsage
	}
	if *debug {
		leveledLogBackend.SetLevel(logging.DEBUG, "")
	}

	err := dispatch(&argList{args: ourFlags.Args()}, stdout)
	switch err.(type) {
	case nil:
		return exitOK
	case usageError:
		fmt.Fprintf(stderr, "%s: %s\n%s", progName, err.Error(), usageMessage())
		return exitUsage
	default:
		log.Errorf("%v", err)
		return exitError
	}
}

func dispatch(al *argList, stdout io.Writer) error {
	subcommand, err := al.next("subcommand")
	if err != nil {
		return err
	}

	switch subcommand {
	case "compress", "decompress":
		src, err := al.next("SRC")
		if err != nil {
			return err
		}
		dst, err := al.next("DST")
		if err != nil {
			return err
		}
		if err := al.end(); err != nil {
			return err
		}
		fn := huffzip.CompressFile
		if subcommand == "decompress" {
			fn = huffzip.DecompressFile
		}
		stats, err := fn(src, dst)
		if err != nil {
			return err
		}
		log.Infof("%s %s -> %s: %s", subcommand, src, dst, stats)
		return nil

	case "table":
		path, err := al.next("FILE")
		if err != nil {
			return err
		}
		if err := al.end(); err != nil {
			return err
		}
		return showTable(path, stdout)

	default:
		return usageErrorf("unknown subcommand %q", subcommand)
	}
}

func showTable(path string, stdout io.Writer) error {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return &huffzip.IOError{Op: "read", Path: path, Err: err}
	}
	d, stats, err := huffzip.Inspect(data)
	if err != nil {
		return err
	}
	if _, err := d.Dump(stdout); err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout, stats)
	return err
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
