// Package logtail reads cohort's JSON log file for `cohort logs`.
//
// Read returns the last N records at or above a level using a ring buffer,
// so memory stays proportional to N rather than to the file size. Lines that
// are not JSON (panics, output from older builds) are kept as INFO records.
// Follow watches the log directory with fsnotify and streams records as
// they are appended, restarting from the top when the file is truncated.
//
//	entries, err := logtail.Read(cfg.LogFile, 200, slog.LevelWarn)
//	for _, e := range entries {
//		fmt.Println(logtail.Format(e))
//	}
package logtail
