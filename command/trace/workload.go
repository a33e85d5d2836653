package trace

import (
	"math/rand"

	"github.com/objtrace/objtrace/host"
	"github.com/objtrace/objtrace/types"
)

// allocationSite is one synthetic source location the workload
// allocates from
type allocationSite struct {
	path      string
	line      int
	tag       types.TypeTag
	classPath string
}

var siteFiles = []string{
	"app/models/account.rb",
	"app/models/order.rb",
	"app/workers/import_job.rb",
	"app/workers/export_job.rb",
	"lib/parser/tokenizer.rb",
	"lib/parser/lexer.rb",
	"lib/cache/entry.rb",
	"lib/report/builder.rb",
}

var siteShapes = []struct {
	tag       types.TypeTag
	classPath string
}{
	{types.TagObject, "Account"},
	{types.TagString, "String"},
	{types.TagArray, "Array"},
	{types.TagMap, "Hash"},
	{types.TagObject, "Order"},
	{types.TagStruct, "ImportJob::Stats"},
	{types.TagData, "Parser::State"},
	// an object whose class the host cannot name
	{types.TagObject, ""},
}

// generateSites builds the allocation sites the workload draws from.
// Site i always maps to the same location and shape, so runs with the
// same seed produce the same report.
func generateSites(count uint64) []allocationSite {
	sites := make([]allocationSite, count)

	for i := range sites {
		shape := siteShapes[i%len(siteShapes)]

		sites[i] = allocationSite{
			path:      siteFiles[i%len(siteFiles)],
			line:      10 + 3*i,
			tag:       shape.tag,
			classPath: shape.classPath,
		}
	}

	return sites
}

// workload drives a simulated runtime through allocation and
// collection cycles
type workload struct {
	runtime *host.SimRuntime
	random  *rand.Rand

	sites []allocationSite

	objectsPerCycle uint64
	survivorRatio   uint64

	// identities allocated by the workload and not reclaimed yet
	live []types.ObjectID

	allocated uint64
	reclaimed uint64
}

func newWorkload(runtime *host.SimRuntime, seed int64, p *traceParams) *workload {
	return &workload{
		runtime:         runtime,
		random:          rand.New(rand.NewSource(seed)),
		sites:           generateSites(p.sites),
		objectsPerCycle: p.objects,
		survivorRatio:   p.survivorRatio,
	}
}

// runCycle allocates a batch of objects, reclaims everything beyond the
// survivor share and completes one collection cycle
func (w *workload) runCycle() {
	for i := uint64(0); i < w.objectsPerCycle; i++ {
		site := w.sites[w.random.Intn(len(w.sites))]

		id := w.runtime.Alloc(site.tag, site.classPath, site.path, site.line)

		w.live = append(w.live, id)
		w.allocated++
	}

	w.reclaim()

	w.runtime.Collect()
}

// reclaim frees random objects until only the survivor share is left
func (w *workload) reclaim() {
	target := uint64(len(w.live)) * w.survivorRatio / 100

	for uint64(len(w.live)) > target {
		victim := w.random.Intn(len(w.live))
		id := w.live[victim]

		w.live[victim] = w.live[len(w.live)-1]
		w.live = w.live[:len(w.live)-1]

		w.runtime.Free(id)
		w.reclaimed++
	}
}
