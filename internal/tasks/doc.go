// Package tasks implements the favorites import pipeline with real-time progress reporting.
//
// # Core Operation
//
// [ImportEngine.Run] drives an end-to-end import of a Bilibili favorites
// folder into a new local playlist:
//
//  1. Resolve collection info (title + total count) — the only fatal step
//  2. Fetch listing pages sequentially, dropping dead items
//  3. Resolve each item's content id; per-item failures are logged and skipped
//  4. Resolve lyric text per song, sequentially, via the configured strategy
//  5. Commit the assembled batch as one new playlist (single visible mutation)
//
// Everything after step 1 soft-fails: a bad page counts as zero items, a bad
// item is dropped, a bad lyric lookup collapses to the sentinel text. The
// import always completes once the collection info is known.
//
// # Lyric Resolution
//
// [LyricResolver] is a per-import strategy: [AutoResolver] searches with the
// song title, [InteractiveResolver] suspends on a [Prompter] so a human can
// edit the keyword or skip. Resolution is strictly sequential so interactive
// prompts appear one at a time in playlist order.
//
// # Progress Reporting
//
// All operations send [ProgressUpdate] values over a caller-supplied channel
// using select with default, so a slow consumer never stalls the pipeline.
package tasks
