package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"rackpy/internal/version"
)

const versionTagline = "parentheses in, indentation out"

// versionField is one optional line of `rackpy version`.
type versionField struct {
	flag  string
	label string
	help  string
	get   func(version.Info) string
	set   func(*versionPayload, string)
}

var versionFields = []versionField{
	{"hash", "commit", "include git commit hash",
		func(i version.Info) string { return i.GitCommit },
		func(p *versionPayload, v string) { p.GitCommit = v }},
	{"message", "message", "include git commit message",
		func(i version.Info) string { return i.GitMessage },
		func(p *versionPayload, v string) { p.GitMessage = v }},
	{"date", "built", "include build timestamp",
		func(i version.Info) string { return i.BuildDate },
		func(p *versionPayload, v string) { p.BuildDate = v }},
	{"go", "go", "include the Go toolchain version",
		func(i version.Info) string { return i.GoVersion },
		func(p *versionPayload, v string) { p.GoVersion = v }},
}

type versionOptions struct {
	format string
	show   map[string]bool // versionField.flag -> печатать
	color  bool
}

type versionPayload struct {
	Tool string `json:"tool"`
	version.Info
	Tagline string `json:"tagline"`
}

func init() {
	for _, f := range versionFields {
		versionCmd.Flags().Bool(f.flag, false, f.help)
	}
	versionCmd.Flags().Bool("full", false, "show every recorded bit of build metadata")
	versionCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show rackpy build information",
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := readGlobalFlags(cmd)
		if err != nil {
			return err
		}
		format, err := cmd.Flags().GetString("format")
		if err != nil {
			return fmt.Errorf("failed to get format flag: %w", err)
		}
		full, err := cmd.Flags().GetBool("full")
		if err != nil {
			return fmt.Errorf("failed to get full flag: %w", err)
		}
		opts := versionOptions{
			format: strings.ToLower(format),
			show:   make(map[string]bool, len(versionFields)),
			color:  g.useColor(cmd.OutOrStdout()),
		}
		for _, f := range versionFields {
			on, err := cmd.Flags().GetBool(f.flag)
			if err != nil {
				return fmt.Errorf("failed to get %s flag: %w", f.flag, err)
			}
			opts.show[f.flag] = on || full
		}

		info := collectVersionInfo()
		switch opts.format {
		case "json":
			return renderVersionJSON(cmd.OutOrStdout(), info, opts)
		case "pretty":
			renderVersionPretty(cmd.OutOrStdout(), info, opts)
			return nil
		default:
			return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
		}
	},
}

func collectVersionInfo() version.Info {
	return version.Current()
}

func renderVersionPretty(out io.Writer, info version.Info, opts versionOptions) {
	// version.Colored смотрит на глобальный color.NoColor
	saved := color.NoColor
	color.NoColor = !opts.color
	defer func() { color.NoColor = saved }()

	dirty := ""
	if info.Dirty {
		dirty = " (dirty)"
	}
	fmt.Fprintf(out, "rackpy %s%s: %s\n", version.Colored(info.Version), dirty, versionTagline)
	shown := 0
	for _, f := range versionFields {
		if opts.show[f.flag] {
			fmt.Fprintf(out, "%-8s %s\n", f.label+":", valueOrUnknown(f.get(info)))
			shown++
		}
	}
	if shown == 0 {
		fmt.Fprintln(out, "set --hash, --message, --date, --go or --full for more build trivia")
	}
}

func renderVersionJSON(out io.Writer, info version.Info, opts versionOptions) error {
	payload := versionPayload{
		Tool:    "rackpy",
		Info:    version.Info{Version: info.Version, Dirty: info.Dirty},
		Tagline: versionTagline,
	}
	for _, f := range versionFields {
		if opts.show[f.flag] {
			f.set(&payload, valueOrUnknown(f.get(info)))
		}
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

func valueOrUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
