package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/joestump/cuecard/internal/coach"
	"github.com/joestump/cuecard/internal/config"
	"github.com/joestump/cuecard/internal/cuecard"
	"github.com/joestump/cuecard/internal/export"
	"github.com/joestump/cuecard/internal/logger"
)

type generateOpts struct {
	req     cuecard.Request
	pngPath string
	raw     bool
	width   int
}

func newGenerateCmd() *cobra.Command {
	var opts generateOpts
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate one cue card in the terminal",
		Example: `  cuecard generate --sport 축구 --situation 승부차기 \
    --mental-state 두려움 --desired-state 자신감 --png card.png`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log, err := logger.New(cfg.Log.Mode)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			svc, err := coach.New(cfg.LLM, log)
			if err != nil {
				return err
			}

			res := svc.Submit(cmd.Context(), opts.req, "")
			if opts.raw && res.Raw != "" {
				fmt.Fprintln(cmd.ErrOrStderr(), res.Raw)
			}
			if res.Err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), cuecard.UserMessage(res.Err))
				return res.Err
			}

			if err := printCard(cmd.OutOrStdout(), res.Card, opts.width); err != nil {
				return err
			}
			if opts.pngPath != "" {
				return writePNG(cmd.Context(), cfg.Export.Font, res.Card, opts.pngPath)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.req.Sport, "sport", cuecard.Sports[0], "sport ("+strings.Join(cuecard.Sports, ", ")+")")
	f.StringVar(&opts.req.Situation, "situation", "", "the moment you feel the most pressure")
	f.StringVar(&opts.req.MentalState, "mental-state", "", "thoughts or feelings in that moment")
	f.StringVar(&opts.req.DesiredState, "desired-state", "", "the state you want to be in")
	f.StringVar(&opts.req.SuccessKey, "success-key", "", "what worked when it went well (optional)")
	f.StringVar(&opts.pngPath, "png", "", "also write the card image to this path")
	f.BoolVar(&opts.raw, "raw", false, "print the raw model reply to stderr")
	f.IntVar(&opts.width, "width", 80, "word wrap width for terminal output")
	return cmd
}

// printCard renders the card's markdown for the terminal. Falls back to plain
// markdown when no renderer can be built.
func printCard(w io.Writer, card *cuecard.Card, width int) error {
	md := card.Markdown()
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		_, err = io.WriteString(w, md)
		return err
	}
	out, err := r.Render(md)
	if err != nil {
		out = md
	}
	_, err = io.WriteString(w, out)
	return err
}

func writePNG(ctx context.Context, fontPath string, card *cuecard.Card, path string) error {
	capturer, err := export.NewPNGCapturer(fontPath)
	if err != nil {
		return err
	}
	img, err := capturer.Capture(ctx, card)
	if err != nil {
		return err
	}
	return os.WriteFile(path, img, 0o644)
}
