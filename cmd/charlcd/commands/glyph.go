package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"charlcd/internal/app"
	"charlcd/internal/charset"
	"charlcd/internal/store"
)

func glyphCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "glyph",
		Short: "Manage custom glyphs",
	}
	cmd.AddCommand(glyphSaveCmd(), glyphListCmd(), glyphShowCmd(), glyphDeleteCmd(), glyphLoadCmd())
	return cmd
}

func glyphSaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "save <name> <pattern>",
		Short:   "Store a glyph in the library",
		Example: `  charlcd glyph save heart '...../.#.#./#####/#####/.###./..#../...../.....'`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := store.ParseGlyph(args[1])
			if err != nil {
				return err
			}
			if err := app.NewGlyphs(cfg).Save(args[0], g); err != nil {
				return err
			}
			fmt.Printf("Saved glyph %q\n", args[0])
			return nil
		},
	}
}

func glyphListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored glyphs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := app.NewGlyphs(cfg)
			names, err := s.List()
			if err != nil {
				return err
			}
			for _, name := range names {
				g, err := s.Load(name)
				if err != nil {
					return err
				}
				fmt.Printf("%-12s %s\n", name, g)
			}
			return nil
		},
	}
}

func glyphShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Print a glyph as a dot picture",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := app.NewGlyphs(cfg).Load(args[0])
			if err != nil {
				return err
			}
			for _, row := range g.Rows() {
				fmt.Println(row)
			}
			return nil
		},
	}
}

func glyphDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Remove a glyph from the library",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.NewGlyphs(cfg).Delete(args[0])
		},
	}
}

func glyphLoadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load <name> <slot 0-7>",
		Short: "Upload a stored glyph into CGRAM",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			slot, err := strconv.ParseUint(args[1], 0, 8)
			if err != nil || slot > charset.MaxCustom {
				return fmt.Errorf("slot must be 0..%d, got %q", charset.MaxCustom, args[1])
			}
			g, err := app.NewGlyphs(cfg).Load(args[0])
			if err != nil {
				return err
			}
			return withDisplay(func(w *app.Wire) error {
				return w.LCD.CreateChar(byte(slot), g)
			})
		},
	}
}
