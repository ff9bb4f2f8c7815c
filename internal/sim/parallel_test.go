package sim_test

import (
	"context"
	"io"
	"log/slog"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/memsim/internal/dynamo"
	"github.com/san-kum/memsim/internal/sim"
)

var _ = Describe("Ensemble", func() {
	var (
		s    *sim.Simulator
		cfgs []sim.Config
	)

	BeforeEach(func() {
		s = sim.New(sim.NewRegistry(), sim.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
		cfgs = nil
		for _, x0 := range []float64{0.1, 0.3, 0.5, 0.7, 0.9} {
			cfg := hpSine()
			cfg.X0 = x0
			cfg.NumPoints = 300
			cfgs = append(cfgs, cfg)
		}
	})

	It("should return results in input order", func() {
		results, err := sim.NewEnsemble(s, 2).Run(context.Background(), cfgs)

		Expect(err).ToNot(HaveOccurred())
		Expect(results).To(HaveLen(len(cfgs)))
		for i, res := range results {
			Expect(res.State[0]).To(Equal(cfgs[i].X0))
		}
	})

	It("should match sequential runs", func() {
		results, err := sim.NewEnsemble(s, 0).Run(context.Background(), cfgs)
		Expect(err).ToNot(HaveOccurred())

		for i, cfg := range cfgs {
			want, err := s.Simulate(cfg)
			Expect(err).ToNot(HaveOccurred())
			Expect(results[i].State).To(Equal(want.State))
		}
	})

	It("should fail on the first configuration error", func() {
		cfgs[2].ModelID = "nonexistent"

		results, err := sim.NewEnsemble(s, 1).Run(context.Background(), cfgs)

		Expect(results).To(BeNil())
		Expect(err).To(MatchError(dynamo.ErrUnknownModel))
	})

	It("should stop on a cancelled context", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		results, err := sim.NewEnsemble(s, 1).Run(ctx, cfgs)

		Expect(results).To(BeNil())
		Expect(err).To(MatchError(context.Canceled))
	})
})
