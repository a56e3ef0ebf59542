package step

import (
	"reflect"
	"sort"
	"testing"
)

const sampleFile = `ISO-10303-21;
HEADER;
FILE_DESCRIPTION((''),'2;1');
ENDSEC;
DATA;
#1 = IFCPROJECT('2O2Fr$t4X7Zf8NOew3FLOH',#2,'Sample',$,$,$,$,(#20),#7);
#12 = IFCWALL('0DWgwt6o1FOx7466fPk$jl',#2,'Basic Wall',$,$,#25,#30,'W-01');
#123 = IFCWALLSTANDARDCASE('1hOSvn6df7F8_7GcBWlR72',#2,'Party Wall',$,$,#26,#31,'W-02');
#40 = IFCRELDEFINESBYPROPERTIES('2tAQsn6fX500$iVvnIsJSk',#2,$,$,(#12),#50);
#50 = IFCELEMENTQUANTITY('3rfqTyk$X7yuXm89nLuGp1',#2,'BaseQuantities',$,$,(#51));
#51 = IFCQUANTITYAREA('NetSideArea',$,$,12.5);
not a record line
ENDSEC;
END-ISO-10303-21;
`

func TestNewIndex(t *testing.T) {
	idx := NewIndex(sampleFile)

	t.Run("records indexed by id", func(t *testing.T) {
		if idx.Len() != 6 {
			t.Fatalf("expected 6 records, got %d", idx.Len())
		}
		rec, ok := idx.Get(12)
		if !ok {
			t.Fatalf("expected record 12")
		}
		if rec.Type() != "IFCWALL" {
			t.Fatalf("expected IFCWALL, got %q", rec.Type())
		}
	})

	t.Run("terminator stripped", func(t *testing.T) {
		rec, _ := idx.Get(51)
		if rec.Body[len(rec.Body)-1] == ';' {
			t.Fatalf("expected ; stripped, got %q", rec.Body)
		}
	})

	t.Run("non-record lines counted not fatal", func(t *testing.T) {
		// header, section markers and the malformed line
		if idx.SkippedLines == 0 {
			t.Fatalf("expected skipped lines")
		}
	})

	t.Run("type lookup", func(t *testing.T) {
		if got := idx.OfType("ifcwall"); !reflect.DeepEqual(got, []int{12}) {
			t.Fatalf("unexpected ids for IFCWALL: %v", got)
		}
		if got := idx.OfType("IFCWALLSTANDARDCASE"); !reflect.DeepEqual(got, []int{123}) {
			t.Fatalf("unexpected ids for IFCWALLSTANDARDCASE: %v", got)
		}
	})

	t.Run("reverse reference index", func(t *testing.T) {
		refs := idx.Referrers(12)
		sort.Ints(refs)
		if !reflect.DeepEqual(refs, []int{40}) {
			t.Fatalf("expected #40 to reference #12, got %v", refs)
		}
		// #123 must not appear as a referrer of #12.
		for _, id := range idx.Referrers(50) {
			if id != 40 {
				t.Fatalf("unexpected referrer of #50: %d", id)
			}
		}
	})

	t.Run("type occurrence counts", func(t *testing.T) {
		counts := idx.Types()
		if counts["IFCWALL"] != 1 || counts["IFCQUANTITYAREA"] != 1 {
			t.Fatalf("unexpected counts: %v", counts)
		}
	})
}

func TestNewIndex_Empty(t *testing.T) {
	idx := NewIndex("")
	if idx.Len() != 0 {
		t.Fatalf("expected empty index, got %d records", idx.Len())
	}
	if idx.SkippedLines != 0 {
		t.Fatalf("expected no skipped lines, got %d", idx.SkippedLines)
	}
}

func TestRecordType_NoCall(t *testing.T) {
	rec := Record{ID: 1, Body: "$"}
	if rec.Type() != "" {
		t.Fatalf("expected empty type, got %q", rec.Type())
	}
}
