package pipeline

// RunStats tracks aggregate counters across one batch run.
type RunStats struct {
	Total    int // files discovered
	Current  int // 1-based position of the last file looked at
	Kept     int // colors: rows written
	Skipped  int // colors: frames dropped as duplicates
	Exported int // stills: TIFF files written
	Streamed int // video: frames delivered to the encoder
	Failed   int // files that errored (colors/stills continue past these)
}
