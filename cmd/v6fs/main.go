package main

import (
	"log"
	"os"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/sixthedition/v6fs"
	"github.com/sixthedition/v6fs/errors"
	"github.com/sixthedition/v6fs/internal/compress"
	"github.com/sixthedition/v6fs/internal/frontend"
)

func main() {
	app := cli.App{
		Name:  "v6fs",
		Usage: "Decode and walk Unix Sixth Edition (v6) file-system images",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "print v6fs2tar's traversal warnings to standard error"},
		},
		Commands: []*cli.Command{
			{
				Name:      "superblock",
				Usage:     "Print the decoded superblock of one or more images",
				ArgsUsage: "[file ...]",
				Action:    runSuperblock,
			},
			{
				Name:      "inodes",
				Usage:     "List every in-use inode of one or more images",
				ArgsUsage: "[file ...]",
				Action:    runInodes,
			},
			{
				Name:      "icat",
				Usage:     "Print the contents of one or more inodes",
				ArgsUsage: "devfile [inode ...]",
				Action:    runIcat,
			},
			{
				Name:      "itree",
				Usage:     "Pre-order print the tree rooted at one or more inodes",
				ArgsUsage: "devfile [inode ...]",
				Action:    runItree,
			},
			{
				Name:      "v6fs2tar",
				Usage:     "Export a traversal as a tar archive",
				ArgsUsage: "devfile [inode ...]",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "write the archive here instead of standard output"},
					&cli.BoolFlag{Name: "gzip", Aliases: []string{"z"}, Usage: "gzip-compress the archive"},
					&cli.BoolFlag{Name: "bzip2", Aliases: []string{"j"}, Usage: "bzip2-compress the archive"},
					&cli.BoolFlag{Name: "xz", Aliases: []string{"J"}, Usage: "xz-compress the archive"},
					&cli.StringFlag{Name: "type", Aliases: []string{"t"}, Usage: "compress with the named format: gz, bz2, xz"},
				},
				Action: runV6FsToTar,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		if code := exitCodeOf(err); code != 0 {
			log.Printf("v6fs: %s", err)
			os.Exit(code)
		}
		log.Fatalf("v6fs: fatal error: %s", err)
	}
}

// exitCodeOf maps a DriverError onto the exit codes the usage/format error
// kinds call for: 1 for usage errors, 2 for format errors (and range
// errors, which share a cause with malformed input), 0 otherwise — callers
// that get 0 fall through to log.Fatalf instead, since an IOError aborts
// the session outright.
func exitCodeOf(err error) int {
	driverErr, ok := err.(errors.DriverError)
	if !ok {
		return 0
	}

	switch driverErr.Errno() {
	case errors.EUsageError:
		return 1
	case errors.ERangeError, errors.EBoundsInode, errors.EBoundsBlock,
		errors.EFormatError, errors.ETruncatedRecord, errors.EBlockCountMismatch,
		errors.EIndirectOutOfRange, errors.EBadSuperblock:
		return 2
	default:
		return 0
	}
}

func runSuperblock(c *cli.Context) error {
	return frontend.Superblock(os.Stdout, c.Args().Slice())
}

func runInodes(c *cli.Context) error {
	return frontend.Inodes(os.Stdout, c.Args().Slice())
}

func runIcat(c *cli.Context) error {
	devfile, inodeNumbers, err := devfileAndInodes(c)
	if err != nil {
		return err
	}
	return frontend.Icat(os.Stdout, devfile, inodeNumbers)
}

func runItree(c *cli.Context) error {
	devfile, inodeNumbers, err := devfileAndInodes(c)
	if err != nil {
		return err
	}
	return frontend.Itree(os.Stdout, devfile, inodeNumbers)
}

func runV6FsToTar(c *cli.Context) error {
	devfile, inodeNumbers, err := devfileAndInodes(c)
	if err != nil {
		return err
	}

	codec, err := compressionFlag(c)
	if err != nil {
		return err
	}

	cfg := frontend.Config{
		OutputPath:   c.String("output"),
		Compression:  codec,
		InodeNumbers: inodeNumbers,
		Verbose:      c.Bool("verbose"),
	}
	return frontend.V6FsToTar(cfg, devfile)
}

func compressionFlag(c *cli.Context) (compress.Codec, error) {
	if name := c.String("type"); name != "" {
		return compress.ParseCodec(name)
	}
	switch {
	case c.Bool("gzip"):
		return compress.Gzip, nil
	case c.Bool("bzip2"):
		return compress.Bzip2, nil
	case c.Bool("xz"):
		return compress.XZ, nil
	default:
		return compress.None, nil
	}
}

func devfileAndInodes(c *cli.Context) (string, []v6fs.InodeNumber, error) {
	if c.Args().Len() < 1 {
		return "", nil, v6fs.ErrUsageError
	}

	devfile := c.Args().First()
	var inodeNumbers []v6fs.InodeNumber
	for _, arg := range c.Args().Slice()[1:] {
		n, err := strconv.ParseUint(arg, 10, 16)
		if err != nil {
			return "", nil, v6fs.ErrUsageError
		}
		inodeNumbers = append(inodeNumbers, v6fs.InodeNumber(n))
	}
	return devfile, inodeNumbers, nil
}
