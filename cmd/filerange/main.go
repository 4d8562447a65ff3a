// Command filerange is a thin CLI over the filerange package, one
// subcommand per public operation, for scripting and manual testing
// of the mutation engine without writing Go.
package main

import (
	"fmt"
	"os"

	"github.com/kmio/filerange"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	relativeToExe bool
	openSymlink   bool
	truncateFile  bool
	overwriteFile bool
)

func flags() filerange.Flags {
	var f filerange.Flags
	if relativeToExe {
		f |= filerange.RelativeToExe
	}
	if openSymlink {
		f |= filerange.OpenSymlink
	}
	if truncateFile {
		f |= filerange.TruncateFile
	}
	if overwriteFile {
		f |= filerange.OverwriteFile
	}
	return f
}

func parseOffset(s string) (int64, error) {
	if s == "eof" || s == "EOF" {
		return filerange.EOF, nil
	}
	var n int64
	_, err := fmt.Sscanf(s, "%d", &n)
	return n, err
}

var rootCmd = &cobra.Command{
	Use:           "filerange",
	Short:         "Inspect and mutate files at arbitrary byte ranges",
	SilenceUsage:  true,
	SilenceErrors: false,
}

var sizeCmd = &cobra.Command{
	Use:   "size <path>",
	Short: "Print the file's length in bytes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := filerange.FileSize(args[0], flags())
		if err != nil {
			return err
		}
		fmt.Println(n)
		return nil
	},
}

var readCmd = &cobra.Command{
	Use:   "read <path> <size> <offset|eof>",
	Short: "Read a byte range and write it to stdout",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		var size int64
		if _, err := fmt.Sscanf(args[1], "%d", &size); err != nil {
			return err
		}
		offset, err := parseOffset(args[2])
		if err != nil {
			return err
		}
		buf := make([]byte, size)
		n, err := filerange.ReadFile(args[0], buf, offset, flags())
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(buf[:n])
		return err
	},
}

var writeCmd = &cobra.Command{
	Use:   "write <path> <offset|eof>",
	Short: "Write stdin to a byte range",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		offset, err := parseOffset(args[1])
		if err != nil {
			return err
		}
		data, err := readAllStdin()
		if err != nil {
			return err
		}
		return filerange.WriteFile(args[0], data, offset, flags())
	},
}

var insertCmd = &cobra.Command{
	Use:   "insert <path> <offset|eof>",
	Short: "Insert stdin at a byte range, growing the file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		offset, err := parseOffset(args[1])
		if err != nil {
			return err
		}
		data, err := readAllStdin()
		if err != nil {
			return err
		}
		return filerange.InsertFile(args[0], data, offset, flags())
	},
}

var rewriteCmd = &cobra.Command{
	Use:   "rewrite <path>",
	Short: "Replace the whole file with stdin",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := readAllStdin()
		if err != nil {
			return err
		}
		return filerange.RewriteFile(args[0], data, flags())
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear <path> <size> <offset|eof>",
	Short: "Zero a byte range without changing file length",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		var size int64
		if _, err := fmt.Sscanf(args[1], "%d", &size); err != nil {
			return err
		}
		offset, err := parseOffset(args[2])
		if err != nil {
			return err
		}
		return filerange.ClearFile(args[0], size, offset, flags())
	},
}

var trimCmd = &cobra.Command{
	Use:   "trim <path> <size> <offset|eof>",
	Short: "Remove a byte range, shrinking the file",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		var size int64
		if _, err := fmt.Sscanf(args[1], "%d", &size); err != nil {
			return err
		}
		offset, err := parseOffset(args[2])
		if err != nil {
			return err
		}
		return filerange.TrimFile(args[0], size, offset, flags())
	},
}

var isTerminalCmd = &cobra.Command{
	Use:   "isterminal <stdin|stdout|stderr>",
	Short: "Report whether a standard stream is connected to a terminal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var stream *os.File
		switch args[0] {
		case "stdin":
			stream = os.Stdin
		case "stdout":
			stream = os.Stdout
		case "stderr":
			stream = os.Stderr
		default:
			return fmt.Errorf("unknown stream %q, want stdin, stdout or stderr", args[0])
		}
		fmt.Println(filerange.StreamIsTerminal(stream))
		return nil
	},
}

func readAllStdin() ([]byte, error) {
	var out []byte
	buf := make([]byte, 64*1024)
	for {
		n, err := os.Stdin.Read(buf)
		out = append(out, buf[:n]...)
		if err != nil {
			if err.Error() == "EOF" {
				return out, nil
			}
			return out, err
		}
	}
}

func init() {
	pf := pflag.NewFlagSet("filerange", pflag.ExitOnError)
	pf.BoolVar(&relativeToExe, "relative-to-exe", false, "resolve a non-absolute path relative to this executable's directory")
	pf.BoolVar(&openSymlink, "open-symlink", false, "size the symlink itself, not its target (size only)")
	pf.BoolVar(&truncateFile, "truncate", false, "reset the file to empty before writing (write only)")
	pf.BoolVar(&overwriteFile, "overwrite", false, "zero the range in place instead of removing it (trim only)")
	rootCmd.PersistentFlags().AddFlagSet(pf)

	rootCmd.AddCommand(sizeCmd, readCmd, writeCmd, insertCmd, rewriteCmd, clearCmd, trimCmd, isTerminalCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
