package logfields

import "log/slog"

// Canonical log field names shared across packages.
const (
	KeyRunID    = "run_id"
	KeyStep     = "step"
	KeyDir      = "dir"
	KeyCommand  = "command"
	KeyRemote   = "remote"
	KeyBranch   = "branch"
	KeyTarget   = "target"
	KeyCommit   = "commit"
	KeyExitCode = "exit_code"
	KeyDuration = "duration_ms"
	KeyError    = "error"
)

func RunID(id string) slog.Attr     { return slog.String(KeyRunID, id) }
func Step(name string) slog.Attr    { return slog.String(KeyStep, name) }
func Dir(d string) slog.Attr        { return slog.String(KeyDir, d) }
func Command(c string) slog.Attr    { return slog.String(KeyCommand, c) }
func Remote(r string) slog.Attr     { return slog.String(KeyRemote, r) }
func Branch(b string) slog.Attr     { return slog.String(KeyBranch, b) }
func Target(t string) slog.Attr     { return slog.String(KeyTarget, t) }
func Commit(hash string) slog.Attr  { return slog.String(KeyCommit, hash) }
func ExitCode(code int) slog.Attr   { return slog.Int(KeyExitCode, code) }
func DurationMS(ms int64) slog.Attr { return slog.Int64(KeyDuration, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
