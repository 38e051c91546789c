package feedback

import (
	"context"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

// 📢 UserLogger provides user-friendly feedback about QA runs
type UserLogger struct {
	log zerolog.Logger // for debug/error logging
}

// 🎨 ResultType represents the kind of outcome being reported
type ResultType int

const (
	MatchFound ResultType = iota
	UnitModified
	CheckSkipped
	RunError
)

// 🖼️ CheckResult represents one reportable outcome of a run
type CheckResult struct {
	Type        ResultType
	Check       string
	UnitID      string
	Description string
	Error       error
}

// 🎯 NewUserLogger creates a new user logger
func NewUserLogger(ctx context.Context) *UserLogger {
	return &UserLogger{
		log: *zerolog.Ctx(ctx),
	}
}

// 📝 LogCheckResult logs one outcome with appropriate emoji and formatting
func (u *UserLogger) LogCheckResult(result CheckResult) {
	var prefix, action string
	var printer *pterm.PrefixPrinter
	switch result.Type {
	case MatchFound:
		prefix = "🔍"
		action = "Match"
		printer = pterm.Info.WithPrefix(pterm.Prefix{Text: prefix})
	case UnitModified:
		prefix = "🔄"
		action = "Modified"
		printer = pterm.Success.WithPrefix(pterm.Prefix{Text: prefix})
	case CheckSkipped:
		prefix = "⏭️"
		action = "Skipped"
		printer = pterm.Warning.WithPrefix(pterm.Prefix{Text: prefix})
	case RunError:
		prefix = "❌"
		action = "Error"
		printer = pterm.Error.WithPrefix(pterm.Prefix{Text: prefix})
	}

	msg := fmt.Sprintf("%s %s", action, result.Check)
	if result.UnitID != "" {
		msg += fmt.Sprintf(" [%s]", result.UnitID)
	}
	if result.Description != "" {
		msg += fmt.Sprintf(" (%s)", result.Description)
	}

	if result.Error != nil {
		printer.Println(msg)
		pterm.Error.Println(result.Error)
		u.log.Error().Err(result.Error).Msg(msg)
	} else {
		printer.Println(msg)
		u.log.Info().Msg(msg)
	}
}

// 📊 LogRunSummary logs a summary line for a whole run
func (u *UserLogger) LogRunSummary(description string) {
	printer := pterm.Info.WithPrefix(pterm.Prefix{Text: "📦"})
	printer.Println(description)
	u.log.Info().Msg(description)
}

// 🔍 LogValidation logs validation results. The trailing error is optional;
// a failed validation without one renders as a warning instead of an error.
func (u *UserLogger) LogValidation(valid bool, description string, errs ...error) {
	var err error
	if len(errs) > 0 {
		err = errs[0]
	}

	if valid {
		pterm.Success.WithPrefix(pterm.Prefix{Text: "✅"}).Println(description)
		u.log.Info().Msg(description)
	} else {
		if err != nil {
			pterm.Error.WithPrefix(pterm.Prefix{Text: "❌"}).Println(description)
			pterm.Error.Println(err)
			u.log.Error().Err(err).Msg(description)
		} else {
			pterm.Warning.WithPrefix(pterm.Prefix{Text: "⚠️"}).Println(description)
			u.log.Warn().Msg(description)
		}
	}
}
