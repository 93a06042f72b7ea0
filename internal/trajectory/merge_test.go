package trajectory_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/trajopt/internal/trajectory"
)

// block builds a rows-by-cols matrix with distinct increasing values.
func block(rows, cols int, start float64) [][]float64 {
	b := make([][]float64, rows)
	v := start
	for r := range b {
		b[r] = make([]float64, cols)
		for c := range b[r] {
			b[r][c] = v
			v++
		}
	}
	return b
}

func width(b [][]float64) int {
	if len(b) == 0 {
		return 0
	}
	return len(b[0])
}

var _ = Describe("MergeNodes", func() {
	It("drops shared boundary samples when continuous", func() {
		blocks := [][][]float64{block(2, 4, 0), block(2, 5, 100), block(2, 6, 200)}
		merged, err := trajectory.MergeNodes(blocks, true)
		Expect(err).NotTo(HaveOccurred())
		Expect(width(merged)).To(Equal(4 - 1 + 5 - 1 + 6))
	})

	It("keeps every column when discontinuous", func() {
		blocks := [][][]float64{block(2, 4, 0), block(2, 5, 100), block(2, 6, 200)}
		merged, err := trajectory.MergeNodes(blocks, false)
		Expect(err).NotTo(HaveOccurred())
		Expect(width(merged)).To(Equal(4 + 5 + 6))
	})

	It("keeps the final block's arrival column", func() {
		blocks := [][][]float64{block(1, 2, 0), block(1, 2, 10)}
		merged, err := trajectory.MergeNodes(blocks, true)
		Expect(err).NotTo(HaveOccurred())
		Expect(merged[0]).To(Equal([]float64{0, 10, 11}))
	})

	It("rejects an empty input", func() {
		_, err := trajectory.MergeNodes(nil, true)
		Expect(err).To(MatchError(trajectory.ErrEmpty))
	})

	It("rejects mismatched row counts", func() {
		blocks := [][][]float64{block(2, 3, 0), block(3, 3, 0)}
		_, err := trajectory.MergeNodes(blocks, true)
		Expect(err).To(MatchError(trajectory.ErrRowMismatch))
	})
})

var _ = Describe("Merge", func() {
	phase1 := [][][]float64{block(2, 2, 0), block(2, 2, 10)}
	phase2 := [][][]float64{block(2, 2, 20), block(2, 2, 30)}

	It("is associative with matching continuity flags", func() {
		// Merging nodes within each phase and then merging phases must
		// equal flattening all blocks into one node merge, with phase
		// boundaries treated as additional node boundaries.
		composed, err := trajectory.Merge([][][][]float64{phase1, phase2}, true, true)
		Expect(err).NotTo(HaveOccurred())

		flat := append(append([][][]float64{}, phase1...), phase2...)
		direct, err := trajectory.MergeNodes(flat, true)
		Expect(err).NotTo(HaveOccurred())

		Expect(composed).To(Equal(direct))
	})

	It("honors independent phase and node flags", func() {
		merged, err := trajectory.Merge([][][][]float64{phase1, phase2}, false, true)
		Expect(err).NotTo(HaveOccurred())
		// Node merge keeps 3 columns per phase, phase merge keeps both
		// boundary columns.
		Expect(width(merged)).To(Equal(3 + 3))

		merged, err = trajectory.Merge([][][][]float64{phase1, phase2}, true, false)
		Expect(err).NotTo(HaveOccurred())
		Expect(width(merged)).To(Equal(4 - 1 + 4))
	})
})

var _ = Describe("MergeNamed", func() {
	It("merges independently per key and keeps the first block's key set", func() {
		blocks := []map[string][][]float64{
			{"q": block(2, 3, 0), "qdot": block(2, 3, 50)},
			{"q": block(2, 4, 100), "qdot": block(2, 4, 150)},
		}
		merged, err := trajectory.MergeNamed(blocks, true)
		Expect(err).NotTo(HaveOccurred())
		Expect(merged).To(HaveLen(2))
		Expect(width(merged["q"])).To(Equal(3 - 1 + 4))
		Expect(width(merged["qdot"])).To(Equal(3 - 1 + 4))
	})

	It("rejects a block missing a key", func() {
		blocks := []map[string][][]float64{
			{"q": block(1, 2, 0)},
			{"tau": block(1, 2, 0)},
		}
		_, err := trajectory.MergeNamed(blocks, true)
		Expect(err).To(MatchError(trajectory.ErrMissingKey))
	})
})
