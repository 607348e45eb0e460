package dis

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	archcore "github.com/lunixbochs/archcore/go"
	"github.com/lunixbochs/archcore/go/cmd"
	"github.com/lunixbochs/archcore/go/models"
)

var disCmd = &cobra.Command{
	Use:   "dis [flags] <hex|file|->",
	Short: "Disassemble bytes loaded into concrete memory.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		cfg, err := cmd.LoadConfig(c)
		if err != nil {
			return err
		}
		if err := applyFlags(c, cfg); err != nil {
			return err
		}
		cmd.ColorDefault(c, cfg)
		input := ""
		if len(args) > 0 {
			input = args[0]
		}
		load, err := c.Flags().GetString("load")
		if err != nil {
			return err
		}
		save, err := c.Flags().GetString("save")
		if err != nil {
			return err
		}
		return Run(cfg, input, load, save, c.InOrStdin(), c.OutOrStdout())
	},
}

func init() {
	flags := disCmd.Flags()
	flags.StringP("arch", "a", "", "architecture (x86, x86_64, arm32, aarch64)")
	flags.Uint64P("base", "b", 0, "load address")
	flags.UintP("count", "n", 0, "instructions to decode")
	flags.Bool("block", false, "decode one block, stopping after the first control flow instruction")
	flags.Bool("thumb", false, "decode arm code in thumb mode")
	flags.Bool("color", false, "highlight control flow")
	flags.String("save", "", "write a snapshot of the concrete state to this file")
	flags.String("load", "", "restore a snapshot before disassembling")
	cmd.Register(disCmd)
}

// applyFlags overrides config values with flags set on the command line.
func applyFlags(c *cobra.Command, cfg *models.Config) error {
	flags := c.Flags()
	var err error
	if flags.Changed("arch") {
		cfg.Arch, err = flags.GetString("arch")
	}
	if err == nil && flags.Changed("base") {
		cfg.Base, err = flags.GetUint64("base")
	}
	if err == nil && flags.Changed("count") {
		cfg.Count, err = flags.GetUint("count")
	}
	if err == nil && flags.Changed("block") {
		cfg.Block, err = flags.GetBool("block")
	}
	if err == nil && flags.Changed("thumb") {
		cfg.Thumb, err = flags.GetBool("thumb")
	}
	if err == nil && flags.Changed("color") {
		cfg.Color, err = flags.GetBool("color")
	}
	return err
}

// Run loads input at cfg.Base and writes a listing to out.
func Run(cfg *models.Config, input, load, save string, stdin io.Reader, out io.Writer) error {
	a, err := cmd.NewArchitecture(cfg)
	if err != nil {
		return err
	}
	if load != "" {
		data, err := os.ReadFile(load)
		if err != nil {
			return errors.Wrap(err, "failed to read snapshot")
		}
		if err := a.Restore(data); err != nil {
			return err
		}
		if cfg.Thumb {
			a.SetThumb(true)
		}
	}
	if input != "" {
		code, err := cmd.ReadInput(input, stdin)
		if err != nil {
			return err
		}
		if err := a.SetConcreteMemoryAreaValue(cfg.Base, code, false); err != nil {
			return err
		}
	} else if load == "" {
		return errors.New("nothing to disassemble: pass code or --load a snapshot")
	}

	var insts []*models.Instruction
	if cfg.Block {
		insts, err = a.DisassembleBlock(cfg.Base)
	} else {
		insts, err = a.DisassembleN(cfg.Base, cfg.Count)
	}
	if err != nil {
		return err
	}
	for _, line := range archcore.Listing(insts, cfg.Color) {
		fmt.Fprintln(out, line)
	}

	if save != "" {
		data, err := a.Save()
		if err != nil {
			return err
		}
		if err := os.WriteFile(save, data, 0644); err != nil {
			return errors.Wrap(err, "failed to write snapshot")
		}
	}
	return nil
}
