package cmd

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/shibukawa/configdir"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	archcore "github.com/lunixbochs/archcore/go"
	"github.com/lunixbochs/archcore/go/models"
)

const configName = "config.yaml"

var rootCmd = &cobra.Command{
	Use:           "archcore",
	Short:         "Concrete cpu models and disassembly for x86, x86-64, ARM and AArch64.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "increase logging verbosity")
	rootCmd.PersistentFlags().String("config", "", "config file (default: archcore/"+configName+" in the user config dir)")
}

// Register adds a subcommand. Subcommand packages call this from init().
func Register(cmd *cobra.Command) {
	rootCmd.AddCommand(cmd)
}

func Main() {
	if err := rootCmd.Execute(); err != nil {
		PrintError(err)
		os.Exit(1)
	}
}

// GetFlag reads a bool flag, exiting on a lookup error.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	return r
}

type stackTracer interface {
	StackTrace() errors.StackTrace
}

// PrintError prints an error, and a stacktrace if available.
func PrintError(err error) {
	printError(os.Stderr, err)
}

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "%s\n", strings.Repeat("-", 40))
	fmt.Fprintf(w, "Error: %s\n", err)
	st, ok := err.(stackTracer)
	if !ok || !log.IsLevelEnabled(log.DebugLevel) {
		return
	}
	// parse full path and method name for each stack frame
	var frames [][]string
	for _, f := range st.StackTrace() {
		fullpath := ""
		fileline := fmt.Sprintf("%s:%d", f, f)
		method := fmt.Sprintf("%n", f)

		frame := fmt.Sprintf("%+s", f)
		tmp := strings.SplitN(frame, "\n", 3)
		if len(tmp) == 2 {
			pathsplit := strings.Split(tmp[0], "/")
			method = pathsplit[len(pathsplit)-1]
			fullpath = strings.TrimSpace(tmp[1])
		}
		frames = append(frames, []string{fullpath, fileline, method})
		if method == "main.main" {
			break
		}
	}
	// calculate column widths
	widths := make([]int, 2)
	for _, f := range frames {
		for i, s := range f[:2] {
			if len(s) > widths[i] {
				widths[i] = len(s)
			}
		}
	}
	for _, f := range frames {
		for i := 0; i < 2; i++ {
			if widths[i] > 0 {
				pad := strings.Repeat(" ", widths[i]-len(f[i]))
				fmt.Fprintf(w, "%s%s | ", f[i], pad)
			}
		}
		fmt.Fprintf(w, "%s()\n", f[2])
	}
}

// LoadConfig reads --config if set, otherwise the first config.yaml found in
// the archcore config dirs, otherwise the defaults. A config with verbose set
// raises the log level like --verbose does.
func LoadConfig(cmd *cobra.Command) (*models.Config, error) {
	cfg, err := readConfig(cmd)
	if err != nil {
		return nil, err
	}
	if cfg.Verbose {
		log.SetLevel(log.DebugLevel)
	}
	return cfg, nil
}

func readConfig(cmd *cobra.Command) (*models.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(err, "failed to read config")
		}
		return models.LoadConfig(data)
	}
	dirs := configdir.New("archcore", "")
	for _, dir := range dirs.QueryFolders(configdir.All) {
		if data, err := dir.ReadFile(configName); err == nil {
			log.WithField("path", dir.Path).Debug("loaded config")
			return models.LoadConfig(data)
		}
	}
	return models.DefaultConfig(), nil
}

// ReadInput returns the bytes named by arg: "-" reads stdin, an existing file
// is read whole, anything else is decoded as hex (spaces and a 0x prefix are
// allowed).
func ReadInput(arg string, stdin io.Reader) ([]byte, error) {
	if arg == "-" {
		return io.ReadAll(stdin)
	}
	if st, err := os.Stat(arg); err == nil && !st.IsDir() {
		return os.ReadFile(arg)
	}
	text := strings.Join(strings.Fields(arg), "")
	text = strings.TrimPrefix(strings.TrimPrefix(text, "0x"), "0X")
	data, err := hex.DecodeString(text)
	if err != nil {
		return nil, errors.Wrapf(err, "%q is neither a file nor hex", arg)
	}
	return data, nil
}

// ColorDefault enables color when it was not configured and stdout is a terminal.
func ColorDefault(cmd *cobra.Command, cfg *models.Config) {
	if !cmd.Flags().Changed("color") && !cfg.Color {
		cfg.Color = term.IsTerminal(int(os.Stdout.Fd()))
	}
}

// NewArchitecture selects the architecture named by cfg.
func NewArchitecture(cfg *models.Config) (*archcore.Architecture, error) {
	tag, err := models.ParseArch(cfg.Arch)
	if err != nil {
		return nil, err
	}
	a := archcore.NewArchitecture()
	if err := a.SetArch(tag); err != nil {
		return nil, err
	}
	a.SetThumb(cfg.Thumb)
	return a, nil
}
