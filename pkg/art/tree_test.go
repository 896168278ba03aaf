package art

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/flier/termidx/pkg/postings"
)

func doc(id uint32, score int64) postings.Document {
	return postings.Document{ID: id, Score: score}
}

func TestInsertAndSearch(t *testing.T) {
	Convey("Given an empty tree", t, func() {
		var tr Tree

		Convey("When inserting a single key", func() {
			old := tr.Insert([]byte("hello"), doc(1, 10))

			So(old, ShouldBeNil)
			So(tr.Len(), ShouldEqual, 1)

			Convey("Then searching for it returns its posting list", func() {
				l := tr.Search([]byte("hello"))

				So(l, ShouldNotBeNil)
				So(l.Values.Freq(), ShouldEqual, 1)
				So(l.Values.MaxScore(), ShouldEqual, int64(10))
			})

			Convey("Then searching for a missing key returns nil", func() {
				So(tr.Search([]byte("world")), ShouldBeNil)
			})
		})

		Convey("When inserting keys that share a prefix", func() {
			tr.Insert([]byte("hell"), doc(1, 5))
			tr.Insert([]byte("hello"), doc(2, 7))
			tr.Insert([]byte("help"), doc(3, 9))

			Convey("Then each key is found independently", func() {
				So(tr.Search([]byte("hell")).Values.Freq(), ShouldEqual, 1)
				So(tr.Search([]byte("hello")).Values.Freq(), ShouldEqual, 1)
				So(tr.Search([]byte("help")).Values.Freq(), ShouldEqual, 1)
				So(tr.Len(), ShouldEqual, 3)
			})

			Convey("Then the tree's max score is the max across all leaves", func() {
				So(tr.root.MaxScore(), ShouldEqual, int64(9))
			})
		})

		Convey("When one key is a proper prefix of another", func() {
			tr.Insert([]byte("cat"), doc(1, 1))
			tr.Insert([]byte("catalog"), doc(2, 2))

			Convey("Then both are found and neither shadows the other", func() {
				So(tr.Search([]byte("cat")), ShouldNotBeNil)
				So(tr.Search([]byte("catalog")), ShouldNotBeNil)
				So(tr.Search([]byte("cata")), ShouldBeNil)
			})
		})

		Convey("When inserting the same document id twice under one key", func() {
			tr.Insert([]byte("dup"), doc(1, 10))
			tr.Insert([]byte("dup"), doc(1, 20))

			Convey("Then the posting list stays a single entry with the max score", func() {
				l := tr.Search([]byte("dup"))

				So(l.Values.Freq(), ShouldEqual, 1)
				So(l.Values.MaxScore(), ShouldEqual, int64(20))
			})
		})

		Convey("When enough children force node growth", func() {
			keys := [][]byte{
				[]byte("a0"), []byte("a1"), []byte("a2"), []byte("a3"), []byte("a4"),
				[]byte("a5"), []byte("a6"), []byte("a7"), []byte("a8"), []byte("a9"),
			}

			for i, k := range keys {
				tr.Insert(k, doc(uint32(i+1), int64(i)))
			}

			Convey("Then every key remains reachable", func() {
				for _, k := range keys {
					So(tr.Search(k), ShouldNotBeNil)
				}
			})
		})
	})
}

func TestDelete(t *testing.T) {
	Convey("Given a tree with several overlapping keys", t, func() {
		var tr Tree

		tr.Insert([]byte("hell"), doc(1, 1))
		tr.Insert([]byte("hello"), doc(2, 2))
		tr.Insert([]byte("help"), doc(3, 3))

		Convey("When deleting a key that exists", func() {
			old := tr.Delete([]byte("hello"))

			So(old, ShouldNotBeNil)
			So(old.Freq(), ShouldEqual, 1)
			So(tr.Len(), ShouldEqual, 2)

			Convey("Then it can no longer be found", func() {
				So(tr.Search([]byte("hello")), ShouldBeNil)
			})

			Convey("Then the other keys are unaffected", func() {
				So(tr.Search([]byte("hell")), ShouldNotBeNil)
				So(tr.Search([]byte("help")), ShouldNotBeNil)
			})
		})

		Convey("When deleting a key that does not exist", func() {
			So(tr.Delete([]byte("halp")), ShouldBeNil)
			So(tr.Len(), ShouldEqual, 3)
		})

		Convey("When deleting every key", func() {
			tr.Delete([]byte("hell"))
			tr.Delete([]byte("hello"))
			tr.Delete([]byte("help"))

			Convey("Then the tree is empty", func() {
				So(tr.Len(), ShouldEqual, 0)
				So(tr.root, ShouldBeNil)
			})
		})
	})

	Convey("Given a tree with a single key", t, func() {
		var tr Tree

		tr.Insert([]byte("only"), doc(1, 1))
		tr.Delete([]byte("only"))

		Convey("Then inserting again rebuilds the same shape", func() {
			tr.Insert([]byte("only"), doc(1, 1))

			So(tr.Len(), ShouldEqual, 1)
			So(tr.Search([]byte("only")), ShouldNotBeNil)

			_, isLeaf := tr.root.(*Leaf)
			So(isLeaf, ShouldBeTrue)
		})
	})
}

func TestVisitAndVisitPrefix(t *testing.T) {
	Convey("Given a tree of overlapping keys", t, func() {
		var tr Tree

		keys := []string{"rust", "rustic", "rusty", "ruby", "go"}
		for i, k := range keys {
			tr.Insert([]byte(k), doc(uint32(i+1), int64(i)))
		}

		Convey("When visiting the whole tree", func() {
			seen := map[string]bool{}

			tr.Visit(func(key []byte, _ *postings.List) bool {
				seen[string(key)] = true

				return false
			})

			Convey("Then every key is visited exactly once", func() {
				So(len(seen), ShouldEqual, len(keys))

				for _, k := range keys {
					So(seen[k], ShouldBeTrue)
				}
			})
		})

		Convey("When visiting with a prefix", func() {
			var seen []string

			tr.VisitPrefix([]byte("rust"), func(key []byte, _ *postings.List) bool {
				seen = append(seen, string(key))

				return false
			})

			Convey("Then only keys sharing that prefix are visited", func() {
				So(seen, ShouldContain, "rust")
				So(seen, ShouldContain, "rustic")
				So(seen, ShouldContain, "rusty")
				So(seen, ShouldNotContain, "ruby")
				So(seen, ShouldNotContain, "go")
			})
		})

		Convey("When the callback aborts early", func() {
			count := 0

			aborted := tr.Visit(func([]byte, *postings.List) bool {
				count++

				return true
			})

			Convey("Then Visit stops after the first leaf and reports the abort", func() {
				So(aborted, ShouldBeTrue)
				So(count, ShouldEqual, 1)
			})
		})
	})
}

func TestMinimumMaximum(t *testing.T) {
	Convey("Given a populated tree", t, func() {
		var tr Tree

		for _, k := range []string{"banana", "apple", "cherry"} {
			tr.Insert([]byte(k), doc(1, 1))
		}

		Convey("Then Minimum and Maximum return the lexicographic bounds", func() {
			So(string(tr.Minimum().Key), ShouldEqual, "apple")
			So(string(tr.Maximum().Key), ShouldEqual, "cherry")
		})
	})

	Convey("Given an empty tree", t, func() {
		var tr Tree

		Convey("Then Minimum and Maximum are both nil", func() {
			So(tr.Minimum(), ShouldBeNil)
			So(tr.Maximum(), ShouldBeNil)
		})
	})
}

func TestDeleteCollapsesThroughLongSharedPrefix(t *testing.T) {
	Convey("Given three keys sharing a prefix longer than MaxPrefixLen", t, func() {
		var tr Tree

		longShared := "abcdefghijklmnop"
		keys := []string{longShared + "one", longShared + "two", longShared + "three"}

		for i, k := range keys {
			tr.Insert([]byte(k), doc(uint32(i+1), int64(i)))
		}

		Convey("When one key is deleted, leaving a single child behind", func() {
			tr.Delete([]byte(longShared + "three"))

			Convey("Then the remaining keys are still found by their full key", func() {
				So(tr.Search([]byte(longShared+"one")), ShouldNotBeNil)
				So(tr.Search([]byte(longShared+"two")), ShouldNotBeNil)
				So(tr.Search([]byte(longShared+"three")), ShouldBeNil)
			})

			Convey("When the remaining keys are deleted too", func() {
				tr.Delete([]byte(longShared + "one"))
				tr.Delete([]byte(longShared + "two"))

				So(tr.Len(), ShouldEqual, 0)
				So(tr.root, ShouldBeNil)
			})
		})
	})
}
