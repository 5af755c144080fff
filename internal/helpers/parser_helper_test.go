package helpers

import "testing"

func TestGetPagination(t *testing.T) {
	tests := []struct {
		page, size string
		want       Pagination
	}{
		{"", "", Pagination{Page: 1, PageSize: 5, Offset: 0}},
		{"3", "", Pagination{Page: 3, PageSize: 5, Offset: 10}},
		{"2", "20", Pagination{Page: 2, PageSize: 20, Offset: 20}},
		{"1", "500", Pagination{Page: 1, PageSize: 50, Offset: 0}},
		{"-1", "0", Pagination{Page: 1, PageSize: 5, Offset: 0}},
		{"x", "y", Pagination{Page: 1, PageSize: 5, Offset: 0}},
	}

	for _, tt := range tests {
		if got := GetPagination(tt.page, tt.size); got != tt.want {
			t.Errorf("GetPagination(%q, %q) = %+v, want %+v", tt.page, tt.size, got, tt.want)
		}
	}
}

func TestTotalPages(t *testing.T) {
	p := Pagination{Page: 1, PageSize: 5}
	for total, want := range map[int64]int64{0: 0, 1: 1, 5: 1, 6: 2, 11: 3} {
		if got := p.TotalPages(total); got != want {
			t.Errorf("TotalPages(%d) = %d, want %d", total, got, want)
		}
	}
}

func TestStringToID(t *testing.T) {
	if id, err := StringToID("42"); err != nil || id != 42 {
		t.Errorf("StringToID(42) = %d, %v", id, err)
	}
	for _, bad := range []string{"", "0", "-3", "abc", "1.5"} {
		if _, err := StringToID(bad); err == nil {
			t.Errorf("StringToID(%q) should fail", bad)
		}
	}
}
