package cmd

import (
	"github.com/hcyang1106/elf-merger/pkg/linker"
	"github.com/hcyang1106/elf-merger/pkg/log"
	"github.com/hcyang1106/elf-merger/pkg/report"
	"github.com/hcyang1106/elf-merger/pkg/session"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

type options struct {
	Debug       bool
	UniformScan bool
}

func RootCmd() *cobra.Command {
	return newRootCmd(afero.NewOsFs())
}

func newRootCmd(fs afero.Fs) *cobra.Command {
	opts := &options{}
	s := session.New(fs)

	rootCmd := &cobra.Command{
		Use:           "elf-merger",
		Short:         "Inspect and merge 32-bit ELF relocatable objects",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			log.Setup(cmd.ErrOrStderr(), opts.Debug)
			return nil
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&opts.Debug, "debug", "d", false, "enable debugging")
	rootCmd.PersistentFlags().BoolVar(&opts.UniformScan, "uniform-scan", false,
		"start the mergeability check at symbol index 1, like the symbol rewrite")

	rootCmd.AddCommand(examineCmd(s, opts))
	rootCmd.AddCommand(sectionsCmd(s, opts))
	rootCmd.AddCommand(symbolsCmd(s, opts))
	rootCmd.AddCommand(checkCmd(s, opts))
	rootCmd.AddCommand(mergeCmd(s, opts))

	return rootCmd
}

func (o *options) context() *linker.Context {
	ctx := linker.NewContext()
	ctx.Args.UniformScanStart = o.UniformScan
	return ctx
}

// open empties the session and examines every file in args in order.
func open(s *session.Session, args []string) ([]*linker.ObjectFile, error) {
	s.Refresh()
	for _, filename := range args {
		if _, err := s.Examine(filename); err != nil {
			return nil, err
		}
	}
	return s.Files(), nil
}

func examineCmd(s *session.Session, opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "examine FILE...",
		Short: "Print the ELF header of up to two files",
		Args:  cobra.RangeArgs(1, session.MaxFiles),
		RunE: func(cmd *cobra.Command, args []string) error {
			objs, err := open(s, args)
			if err != nil {
				return err
			}
			p := report.New(cmd.OutOrStdout(), opts.Debug)
			for _, obj := range objs {
				p.Header(obj)
			}
			return nil
		},
	}
}

func sectionsCmd(s *session.Session, opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "sections FILE...",
		Short: "List the section headers of up to two files",
		Args:  cobra.RangeArgs(1, session.MaxFiles),
		RunE: func(cmd *cobra.Command, args []string) error {
			objs, err := open(s, args)
			if err != nil {
				return err
			}
			p := report.New(cmd.OutOrStdout(), opts.Debug)
			for _, obj := range objs {
				p.Sections(obj)
			}
			return nil
		},
	}
}

func symbolsCmd(s *session.Session, opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "symbols FILE...",
		Short: "List the symbol table of up to two files",
		Args:  cobra.RangeArgs(1, session.MaxFiles),
		RunE: func(cmd *cobra.Command, args []string) error {
			objs, err := open(s, args)
			if err != nil {
				return err
			}
			p := report.New(cmd.OutOrStdout(), opts.Debug)
			for _, obj := range objs {
				p.Symbols(obj)
			}
			return nil
		},
	}
}

func checkCmd(s *session.Session, opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check A B",
		Short: "Check whether A's symbols can be resolved against B",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := open(s, args); err != nil {
				return err
			}
			v, err := s.Check(opts.context())
			if err != nil {
				return err
			}
			report.New(cmd.OutOrStdout(), opts.Debug).Verdict(v)
			if !v.IsMergeable() {
				return errors.Wrapf(v.Err(), "%s and %s cannot be merged", args[0], args[1])
			}
			return nil
		},
	}
}

func mergeCmd(s *session.Session, opts *options) *cobra.Command {
	var output string

	mergeCmd := &cobra.Command{
		Use:   "merge A B",
		Short: "Merge B into A and write the result",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := open(s, args); err != nil {
				return err
			}
			ctx := opts.context()
			ctx.Args.Output = output

			p := report.New(cmd.OutOrStdout(), opts.Debug)
			merged, v, err := s.Merge(ctx)
			if err != nil {
				return err
			}
			if merged == nil {
				p.Verdict(v)
				return errors.Wrapf(v.Err(), "%s and %s cannot be merged", args[0], args[1])
			}
			p.Merged(merged, ctx.Args.Output)
			return nil
		},
	}

	mergeCmd.Flags().StringVarP(&output, "output", "o", linker.NewContext().Args.Output, "merged object path")

	return mergeCmd
}
