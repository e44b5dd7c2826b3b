// Package workset maintains a bounded working set of textual
// context fragments for an AI agent conversation, keeping the
// total estimated size under a configured capacity while
// preserving the most important fragments.
//
// The core of the package is the [Engine]: an in-memory item
// store (resident fragments plus an archive) with a compaction
// pass that runs after every mutation that can change total
// size or capacity. Fragments that no longer fit are moved to
// the archive — never deleted — so they can be restored or
// summarized later.
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//
//	    "github.com/calebrin/workset"
//	)
//
//	func main() {
//	    engine := workset.New(workset.Config{
//	        MaxSize:              2000,
//	        PreserveInstructions: true,
//	        Instructions:         "You are a careful assistant.",
//	    })
//
//	    // Near-maximum priority marks a fragment critical: it
//	    // is never archived by compaction.
//	    engine.Insert("User prefers metric units.", 0.95)
//
//	    frag, report := engine.Insert("Weather in Oslo: 4C.", 0.4)
//	    fmt.Println(report.Ratio, frag.ID)
//
//	    // Rendered view: pinned instructions first, then the
//	    // resident fragments (critical before the rest, most
//	    // recent first), then an archived-count line.
//	    fmt.Println(engine.Render())
//	}
//
// # Compaction Policy
//
// When the resident set exceeds capacity, the engine keeps the
// pinned instruction block (if configured) and every fragment
// whose priority is strictly above the critical cutoff
// ([DefaultCriticalCutoff]), then packs the remaining fragments
// greedily in descending priority order into the space left
// over. The greedy pass is single-pass: once a fragment
// overflows, it and everything sorted after it is archived.
// See [Engine.Compact] for the full contract.
//
// # Concurrency
//
// An Engine owns its working set exclusively and performs no
// synchronization. Use one Engine per conversation or session;
// a concurrent host must serialize access externally. See the
// [Engine] documentation.
//
// # Sibling Packages
//
//   - classifier: regex-based task complexity tiers
//   - budget: cumulative spend tracking with threshold alerts
//   - metrics: per-agent execution metrics and bottleneck
//     detection
//
// These are independent tools that share the estimator contract
// but are not coupled to the Engine.
package workset
