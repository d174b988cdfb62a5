package rain

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Engine and Compositor", func() {
	var (
		engine *Engine
		comp   *Compositor
	)

	newEngine := func(cols, rows int, seed int64, p Params) *Engine {
		e, err := NewEngine(Options{Columns: cols, Rows: rows, Params: p, Glyphs: testGlyphs, Seed: seed, Workers: 4})
		Expect(err).NotTo(HaveOccurred())
		return e
	}

	BeforeEach(func() {
		p := DefaultParams()
		p.Spawn = 3
		engine = newEngine(48, 12, 2024, p)
		comp = NewCompositor(testStyles, 4)
	})

	It("keeps every column at the row count", func() {
		for tick := 0; tick < 500; tick++ {
			engine.Step()
			for x := 0; x < engine.Grid().Columns(); x++ {
				Expect(engine.Grid().Column(x).Len()).To(Equal(12))
			}
		}
	})

	It("classifies every empty cell as background", func() {
		for tick := 0; tick < 300; tick++ {
			engine.Step()
			tiers := comp.Classify(engine.Grid())
			for x := range tiers {
				for y, tier := range tiers[x] {
					if !engine.Grid().At(x, y).Occupied() {
						Expect(tier).To(Equal(Background))
					} else {
						Expect(tier).NotTo(Equal(Background))
					}
				}
			}
		}
	})

	It("never lights the bottom row", func() {
		last := engine.Grid().Rows() - 1
		for tick := 0; tick < 300; tick++ {
			engine.Step()
			tiers := comp.Classify(engine.Grid())
			for x := range tiers {
				Expect(tiers[x][last]).To(BeElementOf(Background, DimGreen))
			}
		}
	})

	It("produces some activity with a high spawn chance", func() {
		for tick := 0; tick < 50; tick++ {
			engine.Step()
		}
		occupied := 0
		for x := 0; x < engine.Grid().Columns(); x++ {
			if !engine.Grid().Column(x).Idle() {
				occupied++
			}
		}
		Expect(occupied).To(BeNumerically(">", 0))
	})

	Context("with the same seed", func() {
		It("produces identical grids", func() {
			a := newEngine(30, 10, 99, DefaultParams())
			b := newEngine(30, 10, 99, DefaultParams())
			for tick := 0; tick < 400; tick++ {
				a.Step()
				b.Step()
				Expect(a.Grid().Equal(b.Grid())).To(BeTrue(), "diverged at tick %d", tick+1)
			}
		})
	})

	Context("serialising frames", func() {
		It("writes a plain frame as the row-major grid", func() {
			for tick := 0; tick < 100; tick++ {
				engine.Step()
			}
			plain := NewCompositor(Styles{}, 1).Composite(engine.Grid(), Plain)
			var want string
			for _, row := range engine.Grid().RowStrings() {
				want += row + "\n"
			}
			Expect(plain).To(Equal(want))
		})

		It("strips back to the plain frame once tokens are removed", func() {
			for tick := 0; tick < 100; tick++ {
				engine.Step()
			}
			tiered := comp.Composite(engine.Grid(), Tiered)
			for _, tok := range testStyles.Tiers {
				tiered = strings.ReplaceAll(tiered, tok, "")
			}
			plain := NewCompositor(Styles{}, 1).Composite(engine.Grid(), Plain)
			Expect(tiered).To(Equal(plain))
		})
	})
})

