package cmd

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"golang.org/x/term"

	"github.com/Alia5/xrinput/interaction"
	"github.com/Alia5/xrinput/internal/configpaths"
	"github.com/Alia5/xrinput/profile"
)

// ProfileCommand groups profile-related subcommands.
type ProfileCommand struct {
	Show     ProfileShow     `cmd:"" help:"Print a profile and its digest"`
	Validate ProfileValidate `cmd:"" help:"Check a profile file for setup errors"`
	Init     ProfileInit     `cmd:"" help:"Write the built-in profile to a file"`
}

type ProfileShow struct {
	File   string `arg:"" optional:"" help:"Profile file; the built-in profile is shown when empty" type:"existingfile"`
	Hand   string `help:"Hand of the built-in profile" enum:"left,right" default:"right"`
	Output string `help:"Output format; auto prints a table on a terminal and json otherwise" enum:"auto,table,json,yaml,toml" default:"auto"`
}

func (c *ProfileShow) Run() error {
	return c.run(os.Stdout, term.IsTerminal(int(os.Stdout.Fd())))
}

func (c *ProfileShow) run(w io.Writer, tty bool) error {
	p, err := loadProfile(c.File, c.Hand)
	if err != nil {
		return err
	}
	out := c.Output
	if out == "auto" || out == "" {
		out = "json"
		if tty {
			out = "table"
		}
	}
	if out == "table" {
		return writeTable(w, p)
	}
	return profile.Encode(w, p, out)
}

func writeTable(w io.Writer, p *profile.Profile) error {
	digest := p.Digest()
	fmt.Fprintf(w, "profile %s (%s), digest %s\n\n", p.Name, p.Handedness, hex.EncodeToString(digest[:]))
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tINPUT\tKIND\tACTION")
	for _, d := range p.Mappings {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", d.ID, d.Input, d.Kind, d.Action)
	}
	return tw.Flush()
}

type ProfileValidate struct {
	Files []string `arg:"" name:"file" help:"Profile files to check"`
}

func (c *ProfileValidate) Run(logger *slog.Logger) error {
	var errs []error
	for _, f := range c.Files {
		p, err := profile.Load(f)
		if err != nil {
			logger.Error("Invalid profile", "file", f, "error", err)
			errs = append(errs, err)
			continue
		}
		digest := p.Digest()
		logger.Info("Profile ok", "file", f, "name", p.Name, "mappings", len(p.Mappings), "digest", hex.EncodeToString(digest[:8]))
	}
	return errors.Join(errs...)
}

type ProfileInit struct {
	Hand   string `help:"Hand the profile is written for" enum:"left,right" default:"right"`
	Format string `help:"Output format" enum:"json,yaml,toml" default:"json"`
	Output string `help:"Destination file path (defaults to profile-<hand>.<format> in the current directory)"`
	Force  bool   `help:"Overwrite if the file already exists"`
}

func (c *ProfileInit) Run(logger *slog.Logger) error {
	h, err := interaction.ParseHandedness(c.Hand)
	if err != nil {
		return err
	}
	dest := c.Output
	if dest == "" {
		dest = "profile-" + h.String() + "." + configpaths.Ext(profile.NormalizeFormat(c.Format))
	}
	if !c.Force {
		if _, err := os.Stat(dest); err == nil {
			return errors.New("destination exists; use --force to overwrite")
		}
	}
	if err := configpaths.EnsureDir(dest); err != nil {
		return err
	}
	f, err := os.Create(dest)
	if err != nil {
		return err
	}
	if err := profile.Encode(f, profile.WindowsMixedReality(h), c.Format); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	logger.Info("Wrote profile", "file", dest)
	return nil
}
