package stctable_test

import (
	"github.com/bsm/stctable"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Value", func() {

	decode := func(t stctable.ColumnType, cell interface{}) stctable.Value {
		buf := newTableBuilder(1, t).Append(cell).Build()
		tbl, err := stctable.ReadTable(buf)
		Expect(err).NotTo(HaveOccurred())
		return tbl.Rows[0][0]
	}

	It("should expose typed accessors", func() {
		v := decode(stctable.TypeI16, int16(-1234))
		Expect(v.Type()).To(Equal(stctable.TypeI16))

		n, ok := v.Int16()
		Expect(ok).To(BeTrue())
		Expect(n).To(Equal(int16(-1234)))

		_, ok = v.Uint16()
		Expect(ok).To(BeFalse())
		_, ok = v.Str()
		Expect(ok).To(BeFalse())
	})

	It("should decode all fixed widths", func() {
		i8, _ := decode(stctable.TypeI8, int8(-8)).Int8()
		Expect(i8).To(Equal(int8(-8)))
		u8, _ := decode(stctable.TypeU8, uint8(200)).Uint8()
		Expect(u8).To(Equal(uint8(200)))
		i32, _ := decode(stctable.TypeI32, int32(-70000)).Int32()
		Expect(i32).To(Equal(int32(-70000)))
		u32, _ := decode(stctable.TypeU32, uint32(3e9)).Uint32()
		Expect(u32).To(Equal(uint32(3e9)))
		i64, _ := decode(stctable.TypeI64, int64(-1<<40)).Int64()
		Expect(i64).To(Equal(int64(-1 << 40)))
		u64, _ := decode(stctable.TypeU64, uint64(1<<63)).Uint64()
		Expect(u64).To(Equal(uint64(1 << 63)))
		f32, _ := decode(stctable.TypeF32, float32(0.5)).Float32()
		Expect(f32).To(Equal(float32(0.5)))
		f64, _ := decode(stctable.TypeF64, float64(-2.25)).Float64()
		Expect(f64).To(Equal(-2.25))
	})

	It("should stringify cells", func() {
		Expect(decode(stctable.TypeI8, int8(-8)).String()).To(Equal("-8"))
		Expect(decode(stctable.TypeU64, uint64(1<<63)).String()).To(Equal("9223372036854775808"))
		Expect(decode(stctable.TypeF32, float32(0.5)).String()).To(Equal("0.5"))
		Expect(decode(stctable.TypeF64, float64(-2.25)).String()).To(Equal("-2.25"))
		Expect(decode(stctable.TypeString, "hello").String()).To(Equal("hello"))
	})

	It("should round-trip string cells", func() {
		v := decode(stctable.TypeString, "hello")
		s, ok := v.Str()
		Expect(ok).To(BeTrue())
		Expect(s).To(Equal("hello"))
		Expect(v.IsASCII()).To(BeTrue())

		v = decode(stctable.TypeString, "héllo")
		s, _ = v.Str()
		Expect(s).To(Equal("héllo"))
		Expect(v.IsASCII()).To(BeFalse())

		v = decode(stctable.TypeString, "")
		s, ok = v.Str()
		Expect(ok).To(BeTrue())
		Expect(s).To(Equal(""))
	})

	It("should name column types", func() {
		Expect(stctable.TypeI8.String()).To(Equal("i8"))
		Expect(stctable.TypeF64.String()).To(Equal("f64"))
		Expect(stctable.TypeString.String()).To(Equal("string"))
		Expect(stctable.ColumnType(12).String()).To(Equal("unknown(12)"))
	})
})
