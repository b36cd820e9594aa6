package wire

import "testing"

func TestRoundTripScalars(t *testing.T) {
	w := NewWriter()
	w.Uint64(1, 42)
	w.Sint64(2, -7)
	w.Bool(3, true)
	w.Double(4, 119.88281249999999)
	w.String(5, "abc")
	w.PackedUint32(6, []uint32{1, 2, 3})
	w.PackedSint64(7, []int64{0, 1000000, -1000000})

	r := NewReader(w.Bytes())

	cases := []struct {
		wantNum Number
		wantTyp Type
	}{
		{1, Varint}, {2, Varint}, {3, Varint}, {4, Fixed64}, {5, Bytes}, {6, Bytes}, {7, Bytes},
	}
	for _, c := range cases {
		num, typ, ok, err := r.Next()
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		if !ok {
			t.Fatalf("Next: exhausted early")
		}
		if num != c.wantNum || typ != c.wantTyp {
			t.Fatalf("Next: got (%d,%d), want (%d,%d)", num, typ, c.wantNum, c.wantTyp)
		}
		switch num {
		case 1:
			v, _ := r.Uint64()
			if v != 42 {
				t.Errorf("field 1: got %d, want 42", v)
			}
		case 2:
			v, _ := r.Sint64()
			if v != -7 {
				t.Errorf("field 2: got %d, want -7", v)
			}
		case 3:
			v, _ := r.Bool()
			if !v {
				t.Errorf("field 3: got false, want true")
			}
		case 4:
			v, _ := r.Double()
			if v != 119.88281249999999 {
				t.Errorf("field 4: got %v", v)
			}
		case 5:
			v, _ := r.String()
			if v != "abc" {
				t.Errorf("field 5: got %q", v)
			}
		case 6:
			v, _ := r.PackedUint32()
			if len(v) != 3 || v[0] != 1 || v[2] != 3 {
				t.Errorf("field 6: got %v", v)
			}
		case 7:
			v, _ := r.PackedSint64()
			if len(v) != 3 || v[1] != 1000000 || v[2] != -1000000 {
				t.Errorf("field 7: got %v", v)
			}
		}
	}
	if !r.Done() {
		t.Errorf("reader not exhausted")
	}
}

func TestSkipUnknownField(t *testing.T) {
	w := NewWriter()
	w.Uint64(9, 1)
	w.String(1, "kept")

	r := NewReader(w.Bytes())
	num, typ, ok, err := r.Next()
	if err != nil || !ok {
		t.Fatalf("Next: %v %v", ok, err)
	}
	if err := r.Skip(num, typ); err != nil {
		t.Fatalf("Skip: %v", err)
	}
	num, typ, ok, err = r.Next()
	if err != nil || !ok {
		t.Fatalf("Next: %v %v", ok, err)
	}
	s, err := r.String()
	if err != nil || s != "kept" {
		t.Fatalf("String: %q %v", s, err)
	}
	_ = typ
}

func TestSubmessageScoping(t *testing.T) {
	w := NewWriter()
	w.Submessage(1, func(child *Writer) {
		child.Uint64(1, 7)
		child.String(2, "nested")
	})
	w.Uint64(2, 99)

	r := NewReader(w.Bytes())
	num, _, ok, err := r.Next()
	if err != nil || !ok || num != 1 {
		t.Fatalf("Next: %v %v %v", num, ok, err)
	}
	sub, err := r.Message()
	if err != nil {
		t.Fatalf("Message: %v", err)
	}
	n, _, _, _ := sub.Next()
	v, _ := sub.Uint64()
	if n != 1 || v != 7 {
		t.Fatalf("nested field 1: %d %d", n, v)
	}
	n, _, _, _ = sub.Next()
	s, _ := sub.String()
	if n != 2 || s != "nested" {
		t.Fatalf("nested field 2: %d %q", n, s)
	}
	if !sub.Done() {
		t.Fatalf("submessage reader should be exhausted")
	}

	num, _, ok, err = r.Next()
	if err != nil || !ok || num != 2 {
		t.Fatalf("Next after submessage: %v %v %v", num, ok, err)
	}
	v, _ := r.Uint64()
	if v != 99 {
		t.Fatalf("field 2: got %d", v)
	}
}
