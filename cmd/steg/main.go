package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"golang.org/x/term"
	"lukechampine.com/flagg"

	steg "github.com/yyyoichi/steg_zero"
)

// exit codes of the hide command
const (
	hideOK = iota
	hideOpenFailed
	hideCreateFailed
	hideUnsupported
	hideNoMessage
	hideNotStored
)

// exit codes of the reveal command
const (
	revealOK = iota
	revealOpenFailed
	revealUnsupported
	revealNotRead
)

const exitUsage = 255

func main() {
	log.SetFlags(0)

	flagg.Root.Usage = flagg.SimpleUsage(flagg.Root, `Usage: steg [command] [args]

Commands:
    steg hide in.img out.img
    steg reveal in.img [passkey]
    steg inspect in.img

Supported formats are BMP, JPG and PNG.
`)
	cmdHide := flagg.New("hide", `Usage:
    steg hide [-legacy] [-v] in.img out.img
      Read one line from stdin and hide it in in.img, writing the result to out.img
`)
	hideLegacy := cmdHide.Bool("legacy", false, "do not check BMP capacity; truncate long messages")
	hideVerbose := cmdHide.Bool("v", false, "log progress to stderr")

	cmdReveal := flagg.New("reveal", `Usage:
    steg reveal [-ask] [-v] in.img [passkey]
      Print the message hidden in in.img, shifting it back by passkey if given
`)
	revealAsk := cmdReveal.Bool("ask", false, "prompt for the passkey without echo")
	revealVerbose := cmdReveal.Bool("v", false, "log progress to stderr")

	cmdInspect := flagg.New("inspect", `Usage:
    steg inspect in.img
      Print the format, size and message capacity of in.img
`)

	cmd := flagg.Parse(flagg.Tree{
		Cmd: flagg.Root,
		Sub: []flagg.Tree{
			{Cmd: cmdHide},
			{Cmd: cmdReveal},
			{Cmd: cmdInspect},
		},
	})

	ctx := context.Background()
	switch cmd {
	case cmdHide:
		if cmd.NArg() != 2 {
			cmdHide.Usage()
			os.Exit(exitUsage)
		}
		var opts []steg.Option
		if *hideLegacy {
			opts = append(opts, steg.WithLegacyCapacity())
		}
		if *hideVerbose {
			opts = append(opts, steg.WithLogger(log.New(os.Stderr, "steg: ", 0)))
		}
		os.Exit(hide(ctx, cmd.Arg(0), cmd.Arg(1), os.Stdin, os.Stdout, opts...))

	case cmdReveal:
		if cmd.NArg() != 1 && cmd.NArg() != 2 {
			cmdReveal.Usage()
			os.Exit(exitUsage)
		}
		var opts []steg.Option
		switch {
		case *revealAsk:
			passkey, err := askPasskey("Passkey: ")
			if err != nil {
				log.Fatalln("could not read passkey:", err)
			}
			opts = append(opts, steg.WithPasskey(passkey))
		case cmd.NArg() == 2:
			opts = append(opts, steg.WithPasskey(cmd.Arg(1)))
		}
		if *revealVerbose {
			opts = append(opts, steg.WithLogger(log.New(os.Stderr, "steg: ", 0)))
		}
		os.Exit(reveal(ctx, cmd.Arg(0), os.Stdout, opts...))

	case cmdInspect:
		if cmd.NArg() != 1 {
			cmdInspect.Usage()
			os.Exit(exitUsage)
		}
		if err := inspect(cmd.Arg(0), os.Stdout); err != nil {
			log.Fatalln("could not inspect image:", err)
		}

	default:
		flagg.Root.Usage()
		os.Exit(exitUsage)
	}
}

func hide(ctx context.Context, inPath, outPath string, stdin io.Reader, stdout io.Writer, opts ...steg.Option) int {
	in, err := os.Open(inPath)
	if err != nil {
		fmt.Fprintln(stdout, "Invalid input image path.")
		return hideOpenFailed
	}
	defer in.Close()

	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintln(stdout, "Could not create output image.")
		return hideCreateFailed
	}
	defer out.Close()

	if f, _ := steg.Detect(in); f == steg.Unsupported {
		fmt.Fprintln(stdout, "Unsupported file type.\nSupported file types are BMP, JPG, PNG.")
		return hideUnsupported
	}

	fmt.Fprintln(stdout, "Enter the text:")
	msg, err := readLine(bufio.NewReader(stdin))
	if err != nil {
		fmt.Fprintln(stdout, "Something went wrong...")
		return hideNoMessage
	}

	if _, err := steg.Embed(ctx, in, out, msg, opts...); err != nil {
		log.Println(err)
		fmt.Fprintln(stdout, "Could not store message.")
		return hideNotStored
	}
	fmt.Fprintln(stdout, "Message successfully stored.")
	return hideOK
}

func reveal(ctx context.Context, inPath string, stdout io.Writer, opts ...steg.Option) int {
	in, err := os.Open(inPath)
	if err != nil {
		fmt.Fprintf(stdout, "Could not open image: %s\n", inPath)
		return revealOpenFailed
	}
	defer in.Close()

	msg, err := steg.Extract(ctx, in, opts...)
	if errors.Is(err, steg.ErrUnsupportedFormat) {
		fmt.Fprintln(stdout, "Unsupported file type.\nSupported file types are BMP, JPG, PNG.")
		return revealUnsupported
	}
	_, _ = stdout.Write(msg)
	if err != nil {
		log.Println(err)
		fmt.Fprintln(stdout, "Could not read message.")
		return revealNotRead
	}
	fmt.Fprintln(stdout, "Message read successfully.")
	return revealOK
}

func inspect(inPath string, stdout io.Writer) error {
	in, err := os.Open(inPath)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := steg.Inspect(in)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "format:   %s\n", info.Format)
	if info.Width > 0 {
		fmt.Fprintf(stdout, "size:     %dx%d\n", info.Width, info.Height)
	}
	if info.Format == steg.BMP {
		fmt.Fprintf(stdout, "pixels:   %d bytes at offset %d\n", info.PixelBytes, info.PixelArrayOffset)
	}
	if info.Capacity < 0 {
		fmt.Fprintln(stdout, "capacity: unbounded")
	} else {
		fmt.Fprintf(stdout, "capacity: %d bytes\n", info.Capacity)
	}
	return nil
}

// askPasskey reads a passkey from the terminal without echoing it.
func askPasskey(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	b, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	return string(b), err
}
