package twin_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/machinetwin/internal/machine"
	"github.com/san-kum/machinetwin/internal/noise"
	"github.com/san-kum/machinetwin/internal/twin"
)

func demoParams() machine.Params {
	return machine.Params{
		InitialTemp:    70,
		MaxTemp:        100,
		OptimalTemp:    75,
		ProductionRate: 10,
		Power:          50,
	}
}

var _ = Describe("Twin", func() {
	It("rejects invalid machine parameters", func() {
		p := demoParams()
		p.OptimalTemp = 0
		_, err := twin.New(p, noise.Zero{}, 0)
		Expect(err).To(HaveOccurred())
	})

	It("keeps every bounded quantity within range over 200 ticks", func() {
		tw, err := twin.New(demoParams(), noise.NewGaussian(42), 0)
		Expect(err).NotTo(HaveOccurred())

		for i := 0; i < 200; i++ {
			s := tw.Tick(i)
			Expect(s.Temperature).To(And(BeNumerically(">=", 0), BeNumerically("<=", 100)))
			Expect(s.PowerConsumption).To(And(BeNumerically(">=", 0), BeNumerically("<=", 100)))
			Expect(s.ProductionRate).To(BeNumerically(">=", 0))
			Expect(s.Rotation).To(And(BeNumerically(">=", 0), BeNumerically("<", 360)))
		}
	})

	It("records frames in exactly the order they were ticked", func() {
		tw, err := twin.New(demoParams(), noise.NewGaussian(1), 0)
		Expect(err).NotTo(HaveOccurred())

		for i := 0; i < 50; i++ {
			tw.Tick(i)
		}

		h := tw.History()
		Expect(h.Len()).To(Equal(50))
		for i, frame := range h.Frames {
			Expect(frame).To(Equal(i))
		}
	})

	It("produces bit-identical trajectories for identical noise sequences", func() {
		a, err := twin.New(demoParams(), noise.NewGaussian(7), 0)
		Expect(err).NotTo(HaveOccurred())
		b, err := twin.New(demoParams(), noise.NewGaussian(7), 0)
		Expect(err).NotTo(HaveOccurred())

		for i := 0; i < 100; i++ {
			Expect(a.Tick(i)).To(Equal(b.Tick(i)))
		}
	})

	It("advances rotation by rate*5 degrees per tick, wrapping at 360", func() {
		// at the optimal temperature with silent noise the rate stays at 10
		p := demoParams()
		p.InitialTemp = 75
		tw, err := twin.New(p, noise.Zero{}, 0)
		Expect(err).NotTo(HaveOccurred())

		for i := 0; i < 7; i++ {
			tw.Tick(i)
		}
		Expect(tw.Rotation()).To(BeNumerically("~", 350, 1e-9))

		tw.Tick(7)
		Expect(tw.Rotation()).To(BeNumerically("~", 40, 1e-9))
	})

	It("drops the oldest history entries once capacity is reached", func() {
		tw, err := twin.New(demoParams(), noise.NewGaussian(3), 10)
		Expect(err).NotTo(HaveOccurred())

		for i := 0; i < 25; i++ {
			tw.Tick(i)
		}

		h := tw.History()
		Expect(h.Len()).To(Equal(10))
		Expect(h.Frames[0]).To(Equal(15))
		Expect(h.Frames[9]).To(Equal(24))
	})

	Describe("Run", func() {
		It("ticks the requested number of frames and summarizes them", func() {
			tw, err := twin.New(demoParams(), noise.NewGaussian(42), 0)
			Expect(err).NotTo(HaveOccurred())

			result, err := tw.Run(context.Background(), 200)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Frames).To(Equal(200))
			Expect(result.History.Len()).To(Equal(200))
			Expect(result.Final.Frame).To(Equal(199))
			Expect(result.Metrics).To(HaveKey("mean_temperature"))
			Expect(result.Metrics).To(HaveKey("peak_production"))
			Expect(result.Metrics).To(HaveKey("final_stress"))
		})

		It("summarizes every tick even when the history window is bounded", func() {
			// with silent noise at 70 degrees the rate decays each tick,
			// so the peak belongs to the first tick, which a bounded
			// window has long since dropped
			tw, err := twin.New(demoParams(), noise.Zero{}, 5)
			Expect(err).NotTo(HaveOccurred())

			result, err := tw.Run(context.Background(), 20)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.History.Len()).To(Equal(5))

			firstTickRate := 10 * (1 - 5.0/75.0)
			Expect(result.Metrics["peak_production"]).To(BeNumerically("~", firstTickRate, 1e-9))
			Expect(result.Metrics["mean_temperature"]).To(BeNumerically("~", 70, 1e-9))
		})

		It("stops when the context is canceled", func() {
			tw, err := twin.New(demoParams(), noise.NewGaussian(42), 0)
			Expect(err).NotTo(HaveOccurred())

			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			_, err = tw.Run(ctx, 200)
			Expect(err).To(MatchError(context.Canceled))
		})
	})

	Describe("RunWithCallback", func() {
		It("hands every snapshot to the callback", func() {
			tw, err := twin.New(demoParams(), noise.NewGaussian(5), 0)
			Expect(err).NotTo(HaveOccurred())

			var seen []twin.Snapshot
			err = tw.RunWithCallback(context.Background(), 20, 0, func(s twin.Snapshot) bool {
				seen = append(seen, s)
				return true
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(seen).To(HaveLen(20))
			Expect(seen[19].Frame).To(Equal(19))
		})

		It("stops early when the callback returns false", func() {
			tw, err := twin.New(demoParams(), noise.NewGaussian(5), 0)
			Expect(err).NotTo(HaveOccurred())

			count := 0
			err = tw.RunWithCallback(context.Background(), 20, 0, func(s twin.Snapshot) bool {
				count++
				return count < 5
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(Equal(5))
			Expect(tw.History().Len()).To(Equal(5))
		})
	})

	Describe("Reset", func() {
		It("restores the initial state and clears the history", func() {
			tw, err := twin.New(demoParams(), noise.NewGaussian(9), 0)
			Expect(err).NotTo(HaveOccurred())

			for i := 0; i < 30; i++ {
				tw.Tick(i)
			}
			tw.Reset()

			Expect(tw.History().Len()).To(Equal(0))
			Expect(tw.Rotation()).To(BeZero())
			Expect(tw.Machine().Temperature).To(Equal(70.0))
			Expect(tw.Machine().Pressure).To(Equal(1.0))
		})

		It("replays the original trajectory with a seeded source", func() {
			tw, err := twin.New(demoParams(), noise.NewGaussian(11), 0)
			Expect(err).NotTo(HaveOccurred())

			first := make([]twin.Snapshot, 10)
			for i := range first {
				first[i] = tw.Tick(i)
			}

			tw.Reset()
			for i := range first {
				Expect(tw.Tick(i)).To(Equal(first[i]))
			}
		})
	})
})
