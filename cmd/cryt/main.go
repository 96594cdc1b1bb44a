// Cryt encodes, encrypts and breaks repeating-key XOR.
//
// Usage:
//
//	cryt encode hex|base64
//	cryt decode hex|base64
//	cryt encrypt xor -k KEY
//	cryt decrypt xor -k KEY
//	cryt attack xor [-c CRITERION] [-d]
//	cryt attack xor keysize [-c hamming-distance] [-min N] [-max N]
//	cryt attack xor repeated [-k hamming-distance] [-x CRITERION] [-c CRITERION] [-t N] [-min N] [-max N] [-v]
//
// Input is read from stdin and results are written to stdout.
// CRITERION is printable, text, byte(N) or sample(FILE).
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"golang.org/x/term"

	"github.com/pmaddams/cryt/internal/config"
	"github.com/pmaddams/cryt/xor"
)

// errUsage marks errors caused by a malformed command line.
var errUsage = errors.New("usage")

const usage = `usage:
	cryt encode hex|base64
	cryt decode hex|base64
	cryt encrypt xor -k KEY
	cryt decrypt xor -k KEY
	cryt attack xor [-c CRITERION] [-d]
	cryt attack xor keysize [-c hamming-distance] [-min N] [-max N]
	cryt attack xor repeated [-k hamming-distance] [-x CRITERION] [-c CRITERION] [-t N] [-min N] [-max N] [-v]
`

func main() {
	log.SetFlags(0)
	log.SetPrefix("cryt: ")

	cfg := config.Load()
	if term.IsTerminal(int(os.Stdin.Fd())) {
		log.Print("reading from terminal, end input with Ctrl-D")
	}
	err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr, cfg)
	switch {
	case err == nil:
	case errors.Is(err, flag.ErrHelp):
	case errors.Is(err, errUsage):
		log.Print(err)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	default:
		log.Print(err)
		os.Exit(1)
	}
}

// cmd holds the streams and settings shared by every subcommand.
type cmd struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	cfg    *config.Config
}

// run executes the command line args.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer, cfg *config.Config) error {
	c := &cmd{stdin, stdout, stderr, cfg}
	if len(args) < 2 {
		return fmt.Errorf("%w: missing command", errUsage)
	}
	switch args[0] {
	case "encode":
		return c.encode(args[1])
	case "decode":
		return c.decode(args[1])
	case "encrypt", "decrypt":
		if args[1] != "xor" {
			return fmt.Errorf("%w: unknown algorithm %q", errUsage, args[1])
		}
		return c.crypt(args[0], args[2:])
	case "attack":
		if args[1] != "xor" {
			return fmt.Errorf("%w: unknown algorithm %q", errUsage, args[1])
		}
		return c.attack(args[2:])
	}
	return fmt.Errorf("%w: unknown command %q", errUsage, args[0])
}

// flags returns a flag set that reports errors instead of exiting.
func (c *cmd) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	return fs
}

// parse parses args, marking malformed ones as usage errors.
func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	return nil
}

// read reads all of stdin, failing if it exceeds the configured limit.
func (c *cmd) read() ([]byte, error) {
	buf, err := io.ReadAll(io.LimitReader(c.stdin, c.cfg.MaxInput+1))
	if err != nil {
		return nil, err
	}
	if int64(len(buf)) > c.cfg.MaxInput {
		return nil, fmt.Errorf("input exceeds %d bytes", c.cfg.MaxInput)
	}
	return buf, nil
}

// crypt encrypts or decrypts stdin with repeating XOR.
func (c *cmd) crypt(name string, args []string) error {
	fs := c.flags(name + " xor")
	key := fs.String("k", "", "xor key to be used")
	if err := parse(fs, args); err != nil {
		return err
	}
	if *key == "" {
		return fmt.Errorf("%w: no key received", errUsage)
	}
	buf, err := c.read()
	if err != nil {
		return err
	}
	res, err := xor.Apply(buf, []byte(*key))
	if err != nil {
		return err
	}
	_, err = c.stdout.Write(res)
	return err
}
