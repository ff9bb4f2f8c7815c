package sim_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/memsim/internal/integrators"
	"github.com/san-kum/memsim/internal/sim"
)

type renamed struct{ *integrators.Euler }

func (renamed) Name() string { return "renamed" }

var _ = Describe("Registry", func() {
	var reg *sim.Registry

	BeforeEach(func() {
		reg = sim.NewRegistry()
	})

	It("should list built-in models by id", func() {
		var ids []string
		for _, m := range reg.Models() {
			ids = append(ids, m.ID())
		}
		Expect(ids).To(Equal([]string{"hp_labs", "yakopcic"}))
	})

	It("should look up models", func() {
		m, ok := reg.Model("yakopcic")
		Expect(ok).To(BeTrue())
		Expect(m.Parameters()).To(HaveLen(12))

		_, ok = reg.Model("nonexistent")
		Expect(ok).To(BeFalse())
	})

	It("should list integrators", func() {
		Expect(reg.Integrators()).To(Equal([]string{"dopri5", "euler", "rk4"}))
		in, ok := reg.Integrator(sim.DefaultIntegrator)
		Expect(ok).To(BeTrue())
		Expect(in.Name()).To(Equal("dopri5"))
	})

	It("should keep registries independent", func() {
		other := sim.NewRegistry()
		other.RegisterIntegrator(renamed{integrators.NewEuler()})
		Expect(other.Integrators()).To(ContainElement("renamed"))
		Expect(reg.Integrators()).ToNot(ContainElement("renamed"))
	})
})
