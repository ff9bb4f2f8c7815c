package sweep_test

import (
	"context"
	"io"
	"log/slog"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/memsim/internal/dynamo"
	"github.com/san-kum/memsim/internal/signal"
	"github.com/san-kum/memsim/internal/sim"
	"github.com/san-kum/memsim/internal/sweep"
	"github.com/san-kum/memsim/internal/window"
)

func base() sim.Config {
	return sim.Config{
		ModelID:      "hp_labs",
		ModelParams:  dynamo.Params{"D": 27e-9, "RON": 10e3, "ROFF": 100e3, "muD": 1e-14},
		SignalType:   signal.Sine,
		SignalParams: signal.Params{Vp: 1, Vn: 1, Frequency: 1},
		X0:           0.1,
		TMax:         2,
		NumPoints:    400,
		WindowType:   window.Joglekar,
		WindowP:      7,
	}
}

var _ = Describe("Grid", func() {
	It("should enumerate the cartesian product", func() {
		g := sweep.NewGrid(
			sweep.Axis{Name: "a", Values: []float64{1, 2}},
			sweep.Axis{Name: "b", Values: []float64{10, 20, 30}},
		)

		points := g.Points()

		Expect(g.Size()).To(Equal(6))
		Expect(points).To(HaveLen(6))
		Expect(points[0]).To(Equal(map[string]float64{"a": 1, "b": 10}))
		Expect(points[1]).To(Equal(map[string]float64{"a": 1, "b": 20}))
		Expect(points[5]).To(Equal(map[string]float64{"a": 2, "b": 30}))
	})

	It("should be empty without axes", func() {
		Expect(sweep.NewGrid().Points()).To(BeEmpty())
	})

	DescribeTable("parsing axes",
		func(in string, name string, values []float64) {
			a, err := sweep.ParseAxis(in)
			Expect(err).ToNot(HaveOccurred())
			Expect(a.Name).To(Equal(name))
			Expect(a.Values).To(Equal(values))
		},
		Entry("range", "signal.vp=0.5:1.5:3", "signal.vp", []float64{0.5, 1, 1.5}),
		Entry("list", "RON=100, 200", "RON", []float64{100, 200}),
		Entry("single", "x0=0.3:0.9:1", "x0", []float64{0.3}),
	)

	DescribeTable("rejecting malformed axes",
		func(in string) {
			_, err := sweep.ParseAxis(in)
			Expect(err).To(MatchError(sweep.ErrBadAxis))
		},
		Entry("no name", "=1:2:3"),
		Entry("no values", "x0="),
		Entry("no equals", "x0"),
		Entry("bad count", "x0=0:1:0"),
		Entry("bad number", "x0=a,b"),
	)
})

var _ = Describe("Sweep", func() {
	var ens *sim.Ensemble

	BeforeEach(func() {
		s := sim.New(sim.NewRegistry(), sim.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
		ens = sim.NewEnsemble(s, 4)
	})

	It("should apply every addressable field", func() {
		cfg, err := sweep.Apply(base(), map[string]float64{
			"signal.vp":        2,
			"signal.vn":        3,
			"signal.frequency": 4,
			"x0":               0.5,
			"window.p":         2,
			"window.j":         0.5,
			"RON":              50,
		})

		Expect(err).ToNot(HaveOccurred())
		Expect(cfg.SignalParams).To(Equal(signal.Params{Vp: 2, Vn: 3, Frequency: 4}))
		Expect(cfg.X0).To(Equal(0.5))
		Expect(cfg.WindowP).To(Equal(2.0))
		Expect(cfg.WindowJ).To(Equal(0.5))
		Expect(cfg.ModelParams["RON"]).To(Equal(50.0))
	})

	It("should not modify the base configuration", func() {
		b := base()
		_, err := sweep.Apply(b, map[string]float64{"RON": 50})

		Expect(err).ToNot(HaveOccurred())
		Expect(b.ModelParams["RON"]).To(Equal(10e3))
	})

	It("should reject unknown axes", func() {
		_, err := sweep.Apply(base(), map[string]float64{"bogus": 1})
		Expect(err).To(MatchError(sweep.ErrUnknownAxis))
	})

	It("should evaluate the grid in order", func() {
		g := sweep.NewGrid(sweep.Axis{Name: "signal.vp", Values: []float64{0.25, 0.5, 1}})

		points, err := sweep.Run(context.Background(), ens, base(), g)

		Expect(err).ToNot(HaveOccurred())
		Expect(points).To(HaveLen(3))
		for i, p := range points {
			Expect(p.Values["signal.vp"]).To(Equal(g.Axes()[0].Values[i]))
			Expect(p.Metrics).To(HaveKey("state_swing"))
		}

		best, ok := sweep.Best(points, "state_swing", false)
		Expect(ok).To(BeTrue())
		Expect(best.Values["signal.vp"]).To(Equal(1.0))

		least, ok := sweep.Best(points, "state_swing", true)
		Expect(ok).To(BeTrue())
		Expect(least.Values["signal.vp"]).To(Equal(0.25))
	})

	It("should report configuration errors", func() {
		b := base()
		b.ModelID = "nonexistent"
		g := sweep.NewGrid(sweep.Axis{Name: "x0", Values: []float64{0.2}})

		_, err := sweep.Run(context.Background(), ens, b, g)
		Expect(err).To(MatchError(dynamo.ErrUnknownModel))
	})

	It("should find nothing for an unknown metric", func() {
		_, ok := sweep.Best([]sweep.Point{{Metrics: map[string]float64{"a": 1}}}, "b", true)
		Expect(ok).To(BeFalse())
	})
})
