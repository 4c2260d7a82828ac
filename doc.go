// Package talksite builds a static site of conference talks from a
// spreadsheet export.
//
// # Quick Start
//
// Create a builder, run the whole pipeline, and close when done:
//
//	b, err := talksite.NewBuilder(talksite.WithConfig(cfg))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer b.Close()
//
//	res, err := b.Build(ctx, "talks.csv")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Report.Pages, "pages checked")
//
// # Build Pipeline
//
// A build runs these stages in order:
//
//  1. Read the CSV (header aliases, BOM, multi-line abstracts)
//  2. Validate every row into a typed talk; invalid rows are reported and skipped
//  3. Group public talks into upcoming, past, tag and type listings
//  4. Write one Markdown page per public talk plus the listing pages,
//     keeping the notes block of pages that already exist
//  5. Convert every Markdown page to a standalone HTML page (goldmark or pandoc)
//  6. Check the HTML tree for missing pages and broken structure
//
// Generate, Render and Check run the stages on their own; Build runs all of
// them. Output is deterministic for a given CSV and build date.
//
// # Configuration
//
// Use functional options to customize the builder:
//
//	b, err := talksite.NewBuilder(
//	    talksite.WithConfig(cfg),
//	    talksite.WithBuildDate(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)),
//	    talksite.WithLogger(provider),
//	)
//
// # PDF Export
//
// ExportPDF prints a generated page with headless Chrome, for instance the
// past talks page as an appendix to a CV:
//
//	err := b.ExportPDF(ctx, "site/past/index.html", "talks.pdf")
//
// Chrome is downloaded on first use unless ROD_BROWSER_BIN points at an
// installed browser.
package talksite
