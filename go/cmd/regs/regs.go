package regs

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/lunixbochs/archcore/go/arch"
	"github.com/lunixbochs/archcore/go/cmd"
	"github.com/lunixbochs/archcore/go/models"
	"github.com/lunixbochs/archcore/go/models/cpu"
)

var regsCmd = &cobra.Command{
	Use:   "regs",
	Short: "List an architecture's registers, or the register values in snapshots.",
	Args:  cobra.NoArgs,
	RunE: func(c *cobra.Command, args []string) error {
		cfg, err := cmd.LoadConfig(c)
		if err != nil {
			return err
		}
		if err := applyFlags(c, cfg); err != nil {
			return err
		}
		cmd.ColorDefault(c, cfg)
		load, err := c.Flags().GetString("load")
		if err != nil {
			return err
		}
		diff, err := c.Flags().GetString("diff")
		if err != nil {
			return err
		}
		out := c.OutOrStdout()
		if load == "" {
			return List(cfg.Arch, out)
		}
		return Status(cfg, load, diff, out)
	},
}

func init() {
	regsCmd.Flags().StringP("arch", "a", "", "architecture (x86, x86_64, arm32, aarch64)")
	regsCmd.Flags().String("load", "", "print general purpose register values from this snapshot")
	regsCmd.Flags().String("diff", "", "print the registers that changed between --load and this snapshot")
	regsCmd.Flags().Bool("color", false, "highlight changed digits")
	cmd.Register(regsCmd)
}

func applyFlags(c *cobra.Command, cfg *models.Config) error {
	flags := c.Flags()
	var err error
	if flags.Changed("arch") {
		cfg.Arch, err = flags.GetString("arch")
	}
	if err == nil && flags.Changed("color") {
		cfg.Color, err = flags.GetBool("color")
	}
	return err
}

// List prints every register of the named architecture grouped under its
// parent, both in natural order.
func List(name string, out io.Writer) error {
	desc, err := arch.GetArchByName(name)
	if err != nil {
		return err
	}
	c, err := desc.Cpu.New(cpu.NewHooks())
	if err != nil {
		return models.AllocationFailure(err)
	}
	defer c.Close()

	children := make(map[models.RegId]models.RegList)
	for _, reg := range c.AllRegisters() {
		if !reg.IsParent() {
			children[reg.Parent] = append(children[reg.Parent], reg)
		}
	}
	fmt.Fprintf(out, "%s: %d registers, %d-bit gpr, pc=%s sp=%s\n", desc.Name,
		c.NumberOfRegisters(), c.GprBitSize(), c.ProgramCounter().Name, c.StackPointer().Name)
	for _, parent := range c.ParentRegisters() {
		fmt.Fprintf(out, "%-8s %3d bits\n", parent.Name, parent.BitSize())
		subs := children[parent.Id]
		sort.Sort(subs)
		for _, reg := range subs {
			kind := ""
			if c.IsFlag(reg.Id) {
				kind = " flag"
			}
			fmt.Fprintf(out, "  %-6s [%d..%d]%s\n", reg.Name, reg.High, reg.Low, kind)
		}
	}
	return nil
}

func restore(a *cpu.Arch, path string) (cpu.Cpu, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read snapshot")
	}
	c, err := a.Cpu.New(cpu.NewHooks())
	if err != nil {
		return nil, models.AllocationFailure(err)
	}
	if err := cpu.Restore(c, data); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

// Status prints register values from the load snapshot, or only the changes
// between load and diff.
func Status(cfg *models.Config, load, diff string, out io.Writer) error {
	desc, err := arch.GetArchByName(cfg.Arch)
	if err != nil {
		return err
	}
	c, err := restore(desc, load)
	if err != nil {
		return err
	}
	defer c.Close()
	status := &cpu.StatusDiff{Cpu: c}
	changes := status.Changes(false)
	if diff == "" {
		// nothing came before, so print plainly
		for _, ch := range changes.Changes {
			ch.Old = ch.New
		}
		fmt.Fprint(out, changes.String(false))
		return nil
	}
	next, err := restore(desc, diff)
	if err != nil {
		return err
	}
	defer next.Close()
	status.Cpu = next
	fmt.Fprint(out, status.Changes(true).String(cfg.Color))
	return nil
}
