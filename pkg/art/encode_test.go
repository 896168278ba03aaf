package art

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestEncodeOrdering(t *testing.T) {
	Convey("Given a range of non-negative int64 values", t, func() {
		values := []int64{0, 1, 100, 1 << 40}

		Convey("Then EncodeInt64 preserves ascending order byte-for-byte", func() {
			for i := 1; i < len(values); i++ {
				a, b := EncodeInt64(values[i-1]), EncodeInt64(values[i])
				So(bytesLess(a, b), ShouldBeTrue)
			}
		})
	})

	Convey("Given a range of negative int64 values", t, func() {
		values := []int64{-100, -2, -1}

		Convey("Then EncodeInt64 preserves ascending order byte-for-byte", func() {
			for i := 1; i < len(values); i++ {
				a, b := EncodeInt64(values[i-1]), EncodeInt64(values[i])
				So(bytesLess(a, b), ShouldBeTrue)
			}
		})

		Convey("But a negative value does not sort below zero, matching the plain big-endian encoding's known sign caveat", func() {
			So(bytesLess(EncodeInt64(-1), EncodeInt64(0)), ShouldBeFalse)
		})
	})

	Convey("Given a range of float32 values spanning zero", t, func() {
		values := []float32{-3.5, -1, -0.5, 0, 0.5, 1, 3.5}

		Convey("Then EncodeFloat32 preserves ascending order byte-for-byte", func() {
			for i := 1; i < len(values); i++ {
				a, b := EncodeFloat32(values[i-1]), EncodeFloat32(values[i])
				So(bytesLess(a, b), ShouldBeTrue)
			}
		})
	})
}

func bytesLess(a, b []byte) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}

	return len(a) < len(b)
}

func TestRangeSearch(t *testing.T) {
	Convey("Given a tree of int64-encoded keys", t, func() {
		var tr Tree

		for i, v := range []int64{10, 20, 30, 40, 50} {
			tr.Insert(EncodeInt64(v), doc(uint32(i+1), int64(v)))
		}

		Convey("Then LT returns every value strictly below the target", func() {
			leaves := tr.Int64Search(30, LT)
			So(len(leaves), ShouldEqual, 2)
		})

		Convey("Then LE includes the target itself", func() {
			leaves := tr.Int64Search(30, LE)
			So(len(leaves), ShouldEqual, 3)
		})

		Convey("Then EQ returns exactly the matching leaf", func() {
			leaves := tr.Int64Search(30, EQ)
			So(len(leaves), ShouldEqual, 1)
		})

		Convey("Then GE includes the target itself", func() {
			leaves := tr.Int64Search(30, GE)
			So(len(leaves), ShouldEqual, 3)
		})

		Convey("Then GT excludes the target itself", func() {
			leaves := tr.Int64Search(30, GT)
			So(len(leaves), ShouldEqual, 2)
		})
	})
}
