package stctable_test

import (
	"github.com/bsm/stctable"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Reader", func() {
	var subject *stctable.Reader

	BeforeEach(func() {
		var err error
		subject, err = stctable.NewReader(seedTable(250))
		Expect(err).NotTo(HaveOccurred())
	})

	It("should parse the header", func() {
		Expect(subject.TableID()).To(Equal(uint16(1234)))
		Expect(subject.NumRows()).To(Equal(250))
		Expect(subject.NumColumns()).To(Equal(3))
		Expect(subject.Columns()).To(Equal([]stctable.ColumnType{
			stctable.TypeI32,
			stctable.TypeU16,
			stctable.TypeString,
		}))
	})

	It("should derive the jump table length from the row count", func() {
		jump := subject.JumpTable()
		Expect(jump).To(HaveLen(3))
		Expect(jump[0].ID).To(Equal(int32(0)))
		Expect(jump[1].ID).To(Equal(int32(100)))
		Expect(jump[2].ID).To(Equal(int32(200)))

		r100, err := stctable.NewReader(seedTable(100))
		Expect(err).NotTo(HaveOccurred())
		Expect(r100.JumpTable()).To(HaveLen(1))

		r101, err := stctable.NewReader(seedTable(101))
		Expect(err).NotTo(HaveOccurred())
		Expect(r101.JumpTable()).To(HaveLen(2))
	})

	It("should decode empty tables with a single jump entry", func() {
		r0, err := stctable.NewReader(seedTable(0))
		Expect(err).NotTo(HaveOccurred())
		Expect(r0.NumRows()).To(Equal(0))
		Expect(r0.JumpTable()).To(Equal([]stctable.JumpEntry{{}}))

		it := r0.Iter()
		Expect(it.More()).To(BeFalse())
		Expect(it.Next()).To(BeFalse())
		Expect(it.Err()).NotTo(HaveOccurred())
	})

	It("should decode sequentially", func() {
		it := subject.Iter()

		var n int
		for it.Next() {
			row := it.Row()
			Expect(row).To(HaveLen(3))
			Expect(it.Pos()).To(Equal(n))

			id, ok := row[0].Int32()
			Expect(ok).To(BeTrue())
			Expect(id).To(Equal(int32(n)))

			u, ok := row[1].Uint16()
			Expect(ok).To(BeTrue())
			Expect(u).To(Equal(uint16(n * 2)))

			s, ok := row[2].Str()
			Expect(ok).To(BeTrue())
			Expect(s).To(HaveSuffix("%04d", n))
			Expect(row[2].IsASCII()).To(BeTrue())

			n++
		}
		Expect(it.Err()).NotTo(HaveOccurred())
		Expect(n).To(Equal(250))
	})

	It("should decode deterministically", func() {
		buf := seedTable(50)
		t1, err := stctable.ReadTable(buf)
		Expect(err).NotTo(HaveOccurred())
		t2, err := stctable.ReadTable(buf)
		Expect(err).NotTo(HaveOccurred())
		Expect(t1.Rows).To(Equal(t2.Rows))
	})

	It("should seek via the jump table", func() {
		full, err := stctable.ReadTable(seedTable(250))
		Expect(err).NotTo(HaveOccurred())

		for _, n := range []int{0, 1, 99, 100, 101, 137, 200, 249} {
			it, err := subject.Seek(n)
			Expect(err).NotTo(HaveOccurred())
			Expect(it.Next()).To(BeTrue())
			Expect(it.Pos()).To(Equal(n))
			Expect(it.Row()).To(Equal(full.Rows[n]), "for record %d", n)
		}
	})

	It("should keep iterating after a seek", func() {
		it, err := subject.Seek(198)
		Expect(err).NotTo(HaveOccurred())

		for n := 198; n < 250; n++ {
			Expect(it.More()).To(BeTrue())
			Expect(it.Next()).To(BeTrue())
			Expect(it.Pos()).To(Equal(n))
		}
		Expect(it.More()).To(BeFalse())
		Expect(it.Next()).To(BeFalse())
		Expect(it.Err()).NotTo(HaveOccurred())
	})

	It("should fetch single records", func() {
		row, err := subject.Row(137)
		Expect(err).NotTo(HaveOccurred())
		id, _ := row[0].Int32()
		Expect(id).To(Equal(int32(137)))

		_, err = subject.Row(-1)
		Expect(err).To(MatchError(`stctable: record -1 out of range, table has 250`))
		_, err = subject.Row(250)
		Expect(err).To(MatchError(`stctable: record 250 out of range, table has 250`))
	})

	It("should reject truncated record data", func() {
		buf := seedTable(10)
		r, err := stctable.NewReader(buf[:len(buf)-20])
		Expect(err).NotTo(HaveOccurred())

		it := r.Iter()
		var n int
		for it.Next() {
			n++
		}
		Expect(n).To(BeNumerically("<", 10))
		Expect(it.Err()).To(MatchError(stctable.ErrRowCountMismatch))
		Expect(it.Err()).To(MatchError(stctable.ErrTruncated))

		_, err = stctable.ReadTable(buf[:len(buf)-20])
		Expect(err).To(MatchError(stctable.ErrRowCountMismatch))
	})

	It("should reject truncated headers", func() {
		buf := seedTable(10)
		for _, n := range []int{0, 1, 3, 5, 6, 8} {
			_, err := stctable.NewReader(buf[:n])
			Expect(err).To(MatchError(stctable.ErrMalformedHeader), "for %d bytes", n)
		}
	})

	It("should reject truncated jump tables", func() {
		buf := seedTable(250) // 3 entries, 24 bytes after the 10 byte header
		_, err := stctable.NewReader(buf[:20])
		Expect(err).To(MatchError(stctable.ErrTruncated))
	})

	It("should reject unknown column types", func() {
		buf := seedTable(10)
		buf[8] = 12 // second column type code

		_, err := stctable.NewReader(buf)
		Expect(err).To(MatchError(stctable.ErrMalformedHeader))
		Expect(err).To(MatchError(stctable.ErrUnknownColumnType))
	})

	It("should reject out-of-order jump tables", func() {
		buf := seedTable(250)
		// clash the ids of the second and third entries
		copy(buf[18:22], []byte{200, 0, 0, 0})

		_, err := stctable.NewReader(buf)
		Expect(err).To(MatchError(stctable.ErrMalformedHeader))
	})

	It("should reject invalid UTF-8 in string cells", func() {
		buf := newTableBuilder(7, stctable.TypeString).
			Append("\xff\xfe").
			Build()

		_, err := stctable.ReadTable(buf)
		Expect(err).To(MatchError(stctable.ErrInvalidStringEncoding))
	})

	It("should decode the reference fixture", func() {
		buf := []byte{
			0x88, 0x13, // id = 5000
			0x00, 0x00, // last block len
			0x01, 0x00, // rows = 1
			0x02,       // columns
			0x04, 0x0b, // u16, string
			0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, // jump entry (0, 0)
			0x2a, 0x00, // 42
			0x01, 0x03, 0x00, 'f', 'o', 'o', // "foo"
		}

		tbl, err := stctable.ReadTable(buf)
		Expect(err).NotTo(HaveOccurred())
		Expect(tbl.ID).To(Equal(uint16(5000)))
		Expect(tbl.Rows).To(HaveLen(1))

		u, ok := tbl.Rows[0][0].Uint16()
		Expect(ok).To(BeTrue())
		Expect(u).To(Equal(uint16(42)))

		s, ok := tbl.Rows[0][1].Str()
		Expect(ok).To(BeTrue())
		Expect(s).To(Equal("foo"))
		Expect(tbl.Rows[0][1].IsASCII()).To(BeTrue())
	})
})
