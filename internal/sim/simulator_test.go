package sim_test

import (
	"bytes"
	"log/slog"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/memsim/internal/dynamo"
	"github.com/san-kum/memsim/internal/physics"
	"github.com/san-kum/memsim/internal/signal"
	"github.com/san-kum/memsim/internal/sim"
	"github.com/san-kum/memsim/internal/window"
)

func hpSine() sim.Config {
	return sim.Config{
		ModelID: "hp_labs",
		ModelParams: dynamo.Params{
			"D":    27e-9,
			"RON":  10e3,
			"ROFF": 100e3,
			"muD":  1e-14,
		},
		SignalType:   signal.Sine,
		SignalParams: signal.Params{Vp: 1, Vn: 1, Frequency: 1},
		X0:           0.1,
		TMax:         2,
		WindowType:   window.Joglekar,
		WindowP:      7,
	}
}

func reversals(xs []float64) int {
	n, last := 0, 0
	for k := 1; k < len(xs); k++ {
		dx := xs[k] - xs[k-1]
		dir := 0
		if dx > 1e-12 {
			dir = 1
		} else if dx < -1e-12 {
			dir = -1
		}
		if dir != 0 {
			if last != 0 && dir != last {
				n++
			}
			last = dir
		}
	}
	return n
}

var _ = Describe("Simulator", func() {
	var (
		s   *sim.Simulator
		buf *bytes.Buffer
	)

	BeforeEach(func() {
		buf = new(bytes.Buffer)
		logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		s = sim.New(sim.NewRegistry(), sim.WithLogger(logger))
	})

	Context("with the HP Labs sine configuration", func() {
		var res *sim.Result

		BeforeEach(func() {
			var err error
			res, err = s.Simulate(hpSine())
			Expect(err).ToNot(HaveOccurred())
		})

		It("should return four equal-length traces", func() {
			Expect(res.Time).To(HaveLen(sim.DefaultNumPoints))
			Expect(res.Voltage).To(HaveLen(sim.DefaultNumPoints))
			Expect(res.Current).To(HaveLen(sim.DefaultNumPoints))
			Expect(res.State).To(HaveLen(sim.DefaultNumPoints))
			Expect(res.Time[0]).To(Equal(0.0))
			Expect(res.Time[res.Len()-1]).To(Equal(2.0))
		})

		It("should keep voltage and state in range", func() {
			for k := range res.Time {
				Expect(res.Voltage[k]).To(BeNumerically(">=", -1))
				Expect(res.Voltage[k]).To(BeNumerically("<=", 1))
				Expect(res.State[k]).To(BeNumerically(">=", 0))
				Expect(res.State[k]).To(BeNumerically("<=", 1))
			}
		})

		It("should show a pinched hysteresis loop", func() {
			Expect(reversals(res.State)).To(BeNumerically(">=", 1))
			Expect(res.Metrics["hysteresis_area"]).To(BeNumerically(">", 0))
			Expect(res.Metrics["state_reversals"]).To(BeNumerically(">=", 1))
		})

		It("should recompute current from the sampled state", func() {
			model := physics.NewHPLabs()
			p := hpSine().ModelParams
			for _, k := range []int{0, 1234, 5000, 9999} {
				want := model.Current(res.Voltage[k], res.State[k], p)
				Expect(res.Current[k]).To(Equal(want))
			}
		})

		It("should report solver statistics", func() {
			Expect(res.Stats.Truncated).To(BeFalse())
			Expect(res.Stats.Accepted).To(BeNumerically(">", 0))
			Expect(buf.String()).To(ContainSubstring("simulation complete"))
		})
	})

	It("should honor NumPoints", func() {
		cfg := hpSine()
		cfg.NumPoints = 250

		res, err := s.Simulate(cfg)

		Expect(err).ToNot(HaveOccurred())
		Expect(res.Len()).To(Equal(250))
	})

	It("should run without a window", func() {
		cfg := hpSine()
		cfg.WindowType = ""

		res, err := s.Simulate(cfg)

		Expect(err).ToNot(HaveOccurred())
		Expect(res.State[res.Len()-1]).To(BeNumerically("<=", 1))
	})

	It("should run the Yakopcic model with its defaults", func() {
		model := physics.NewYakopcic()
		cfg := sim.Config{
			ModelID:      model.ID(),
			ModelParams:  dynamo.Defaults(model.Parameters()),
			SignalType:   signal.Triangle,
			SignalParams: signal.Params{Vp: 0.45, Vn: 0.45, Frequency: 100},
			X0:           0.11,
			TMax:         0.02,
			NumPoints:    2000,
			WindowType:   window.Joglekar,
		}

		res, err := s.Simulate(cfg)

		Expect(err).ToNot(HaveOccurred())
		Expect(res.Metrics["state_swing"]).To(BeNumerically(">", 0.5))
		for _, x := range res.State {
			Expect(x).To(BeNumerically(">=", 0))
			Expect(x).To(BeNumerically("<=", 1))
		}
	})

	It("should clamp an out-of-range initial state", func() {
		cfg := hpSine()
		cfg.X0 = 1.5

		res, err := s.Simulate(cfg)

		Expect(err).ToNot(HaveOccurred())
		Expect(res.State[0]).To(Equal(1.0))
	})

	It("should warn when the step limit is reached", func() {
		cfg := hpSine()
		cfg.MaxSteps = 2

		res, err := s.Simulate(cfg)

		Expect(err).ToNot(HaveOccurred())
		Expect(res.Stats.Truncated).To(BeTrue())
		Expect(res.Len()).To(Equal(sim.DefaultNumPoints))
		Expect(buf.String()).To(ContainSubstring("step limit reached"))
	})

	It("should switch integrators by name", func() {
		cfg := hpSine()
		cfg.NumPoints = 200
		ref, err := s.Simulate(cfg)
		Expect(err).ToNot(HaveOccurred())

		cfg.Integrator = "rk4"
		res, err := s.Simulate(cfg)
		Expect(err).ToNot(HaveOccurred())

		for k := range res.State {
			Expect(math.Abs(res.State[k] - ref.State[k])).To(BeNumerically("<", 1e-4))
		}
	})

	DescribeTable("configuration errors",
		func(mutate func(*sim.Config), sentinel error) {
			cfg := hpSine()
			mutate(&cfg)

			res, err := s.Simulate(cfg)

			Expect(res).To(BeNil())
			Expect(err).To(MatchError(sentinel))
			var cerr *dynamo.ConfigError
			Expect(err).To(BeAssignableToTypeOf(cerr))
			Expect(s.Validate(cfg)).To(MatchError(sentinel))
		},
		Entry("unknown model", func(c *sim.Config) { c.ModelID = "nonexistent" }, dynamo.ErrUnknownModel),
		Entry("unknown signal", func(c *sim.Config) { c.SignalType = "square" }, dynamo.ErrUnknownSignal),
		Entry("unknown window", func(c *sim.Config) { c.WindowType = "hann" }, dynamo.ErrUnknownWindow),
		Entry("unknown integrator", func(c *sim.Config) { c.Integrator = "leapfrog" }, dynamo.ErrUnknownIntegrator),
		Entry("zero duration", func(c *sim.Config) { c.TMax = 0 }, dynamo.ErrInvalidConfig),
		Entry("infinite duration", func(c *sim.Config) { c.TMax = math.Inf(1) }, dynamo.ErrInvalidConfig),
		Entry("negative points", func(c *sim.Config) { c.NumPoints = -1 }, dynamo.ErrInvalidConfig),
		Entry("missing parameter", func(c *sim.Config) { delete(c.ModelParams, "muD") }, dynamo.ErrMissingParameter),
	)
})
