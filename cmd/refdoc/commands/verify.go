package commands

import (
	"fmt"

	"git.home.luguber.info/inful/refdoc/internal/foundation/errors"
	"git.home.luguber.info/inful/refdoc/internal/linkverify"
)

// VerifyCmd implements the 'verify' command.
type VerifyCmd struct {
	Output string `short:"o" help:"Site directory to check (defaults to output_dir)"`
	Strict bool   `help:"Exit non-zero when links are broken"`
}

func (v *VerifyCmd) Run(global *Global, root *CLI) error {
	dir := v.Output
	if dir == "" {
		cfg, err := loadConfig(root.Config, Overrides{})
		if err != nil {
			return err
		}
		dir = cfg.OutputPath()
	}

	report, err := linkverify.NewVerifier(dir, loggerOf(global)).VerifyAll(contextOf(global))
	if err != nil {
		return err
	}

	fmt.Printf("Checked %d links in %d pages: %d broken\n", report.Checked, report.Pages, len(report.Broken))
	for _, b := range report.Broken {
		fmt.Printf("  %s:%d %s\n", b.Page, b.Line, b.URL)
	}
	if v.Strict && !report.OK() {
		return errors.ValidationError("site has broken links").
			WithContext("count", len(report.Broken)).
			WithContext("path", dir).
			Build()
	}
	return nil
}
