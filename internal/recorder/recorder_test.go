package recorder_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/probesim/internal/recorder"
)

func fill(b *recorder.Buffer, n int, branch recorder.Branch) {
	for i := 0; i < n; i++ {
		b.Append(recorder.Record{Position: float64(i), Z: float64(i) * 0.5, Value: float64(i * i), Branch: branch})
	}
}

var _ = Describe("Buffer", func() {
	var b *recorder.Buffer

	Context("single buffered", func() {
		BeforeEach(func() {
			b = recorder.New(recorder.Options{})
		})

		It("starts empty", func() {
			Expect(b.Len()).To(Equal(0))
			Expect(b.Curve()).To(BeEmpty())
		})

		It("shows the live buffer as the curve", func() {
			fill(b, 5, recorder.Forward)
			Expect(b.Curve()).To(HaveLen(5))
			Expect(b.Curve()[4].Value).To(Equal(16.0))
		})

		It("clears live records on ResetLive", func() {
			fill(b, 5, recorder.Forward)
			b.ResetLive()
			Expect(b.Len()).To(Equal(0))
		})

		It("returns copies that callers may modify", func() {
			fill(b, 3, recorder.Forward)
			c := b.Curve()
			c[0].Value = 99
			Expect(b.Live()[0].Value).To(Equal(0.0))
		})
	})

	Context("with a capacity", func() {
		BeforeEach(func() {
			b = recorder.New(recorder.Options{Capacity: 4})
		})

		It("drops the oldest records", func() {
			fill(b, 6, recorder.Forward)
			live := b.Live()
			Expect(live).To(HaveLen(4))
			Expect(live[0].Position).To(Equal(2.0))
			Expect(live[3].Position).To(Equal(5.0))
		})
	})

	Context("double buffered", func() {
		BeforeEach(func() {
			b = recorder.New(recorder.Options{MinPoints: 10, DoubleBuffered: true})
		})

		It("replaces last only when live exceeds the minimum", func() {
			fill(b, 10, recorder.Forward)
			Expect(b.Commit()).To(BeFalse())
			Expect(b.Last()).To(BeEmpty())
			Expect(b.Len()).To(Equal(0))

			fill(b, 11, recorder.Forward)
			Expect(b.Commit()).To(BeTrue())
			Expect(b.Last()).To(HaveLen(11))
			Expect(b.Commits()).To(Equal(1))
		})

		It("keeps a stale last curve when a cycle is too short", func() {
			fill(b, 20, recorder.Forward)
			b.Commit()
			fill(b, 3, recorder.Backward)
			Expect(b.Commit()).To(BeFalse())
			Expect(b.Last()).To(HaveLen(20))
			Expect(b.Curve()).To(HaveLen(20))
		})

		It("shows live until the first commit", func() {
			fill(b, 4, recorder.Forward)
			Expect(b.Curve()).To(HaveLen(4))
		})

		It("clears everything on Reset", func() {
			fill(b, 20, recorder.Forward)
			b.Commit()
			fill(b, 2, recorder.Forward)
			b.Reset()
			Expect(b.Len()).To(Equal(0))
			Expect(b.Last()).To(BeEmpty())
			Expect(b.Commits()).To(Equal(0))
		})
	})

	Describe("Filter", func() {
		It("splits the curve by branch", func() {
			b = recorder.New(recorder.Options{})
			fill(b, 3, recorder.Forward)
			fill(b, 2, recorder.Backward)
			Expect(b.Filter(recorder.Forward)).To(HaveLen(3))
			Expect(b.Filter(recorder.Backward)).To(HaveLen(2))
			Expect(recorder.Values(b.Filter(recorder.Backward))).To(Equal([]float64{0, 1}))
		})
	})
})

var _ = DescribeTable("ParseBranch",
	func(in string, want recorder.Branch, ok bool) {
		got, err := recorder.ParseBranch(in)
		if !ok {
			Expect(err).To(HaveOccurred())
			return
		}
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(Equal(want))
		Expect(got.String()).To(Equal(in))
	},
	Entry("forward", "forward", recorder.Forward, true),
	Entry("backward", "backward", recorder.Backward, true),
	Entry("unknown", "sideways", recorder.Forward, false),
)
