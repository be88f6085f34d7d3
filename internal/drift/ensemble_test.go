package drift_test

import (
	"math"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/driftsim/internal/drift"
)

var _ = Describe("Ensemble", func() {
	var e *drift.Ensemble

	BeforeEach(func() {
		e = drift.NewEnsemble(4)
	})

	It("starts with every particle active and unstamped", func() {
		Expect(e.NumActive()).To(Equal(4))
		for i := 0; i < e.Len(); i++ {
			Expect(e.Status[i]).To(Equal(drift.StatusActive))
			Expect(e.DeactivatedStep[i]).To(Equal(-1))
		}
	})

	Describe("Deactivate", func() {
		It("records the status and step index", func() {
			e.Deactivate(1, drift.StatusStranded, 7)

			Expect(e.Status[1]).To(Equal(drift.StatusStranded))
			Expect(e.DeactivatedStep[1]).To(Equal(7))
			Expect(e.NumActive()).To(Equal(3))
		})

		It("is idempotent: the first deactivation wins", func() {
			e.Deactivate(1, drift.StatusStranded, 7)
			e.Deactivate(1, drift.StatusRetired, 12)

			Expect(e.Status[1]).To(Equal(drift.StatusStranded))
			Expect(e.DeactivatedStep[1]).To(Equal(7))
		})

		It("deactivates by mask", func() {
			e.DeactivateWhere([]bool{true, false, true, false}, drift.StatusOutside, 2)

			Expect(e.NumActive()).To(Equal(2))
			Expect(e.CountStatus(drift.StatusOutside)).To(Equal(2))
		})
	})

	Describe("Clone", func() {
		It("copies all attributes independently", func() {
			e.X[2] = 42
			e.Deactivate(0, drift.StatusRetired, 1)

			c := e.Clone()
			c.X[2] = -1
			c.Deactivate(3, drift.StatusStranded, 9)

			Expect(e.X[2]).To(Equal(42.0))
			Expect(e.Status[3]).To(Equal(drift.StatusActive))
			Expect(c.Status[0]).To(Equal(drift.StatusRetired))
		})
	})

	Describe("IsValid", func() {
		It("rejects non-finite positions", func() {
			Expect(e.IsValid()).To(BeTrue())
			e.Z[0] = math.NaN()
			Expect(e.IsValid()).To(BeFalse())
		})
	})
})

var _ = Describe("Status", func() {
	It("only the active status takes part in updates", func() {
		Expect(drift.StatusActive.Active()).To(BeTrue())
		Expect(drift.StatusStranded.Active()).To(BeFalse())
		Expect(drift.StatusRetired.Active()).To(BeFalse())
		Expect(drift.StatusOutside.Active()).To(BeFalse())
	})

	It("renders reason strings", func() {
		Expect(drift.StatusStranded.String()).To(Equal("stranded"))
		Expect(drift.StatusRetired.String()).To(Equal("retired"))
	})
})

var _ = Describe("Seed", func() {
	var rng *rand.Rand

	BeforeEach(func() {
		rng = rand.New(rand.NewSource(1))
	})

	It("rejects empty releases", func() {
		_, err := drift.Seed(drift.SeedSpec{N: 0}, rng)
		Expect(err).To(MatchError(drift.ErrEmptySeed))
	})

	It("spreads particles within the release radius", func() {
		e, err := drift.Seed(drift.SeedSpec{N: 500, X: 100, Y: -200, Radius: 50}, rng)
		Expect(err).NotTo(HaveOccurred())

		for i := 0; i < e.Len(); i++ {
			dx := e.X[i] - 100
			dy := e.Y[i] + 200
			Expect(dx*dx + dy*dy).To(BeNumerically("<=", 50*50+1e-9))
		}
	})

	It("clips wind drift factors to [0, 1]", func() {
		e, err := drift.Seed(drift.SeedSpec{N: 500, WindDriftFactor: 0.05, WindDriftSpread: 0.2}, rng)
		Expect(err).NotTo(HaveOccurred())

		for i := 0; i < e.Len(); i++ {
			Expect(e.WindDriftFactor[i]).To(BeNumerically(">=", 0))
			Expect(e.WindDriftFactor[i]).To(BeNumerically("<=", 1))
		}
	})

	It("never seeds above the surface", func() {
		e, err := drift.Seed(drift.SeedSpec{N: 10, Z: 5}, rng)
		Expect(err).NotTo(HaveOccurred())
		for i := 0; i < e.Len(); i++ {
			Expect(e.Z[i]).To(Equal(0.0))
		}
	})
})

var _ = Describe("Profile", func() {
	profile := drift.Profile{
		Depths: []float64{-100, -50, 0},
		Values: [][]float64{{0.001, 0.002}, {0.01, 0.02}, {0.1, 0.2}},
	}

	It("interpolates linearly between levels", func() {
		Expect(profile.At(0, -75)).To(BeNumerically("~", 0.0055, 1e-12))
		Expect(profile.At(1, -25)).To(BeNumerically("~", 0.11, 1e-12))
	})

	It("clamps outside the covered range", func() {
		Expect(profile.At(0, -500)).To(Equal(0.001))
		Expect(profile.At(0, 0)).To(Equal(0.1))
	})

	It("falls back to the default diffusivity when empty", func() {
		Expect(drift.Profile{}.At(0, -10)).To(Equal(drift.FallbackDiffusivity))
	})
})
