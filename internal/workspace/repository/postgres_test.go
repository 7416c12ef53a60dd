package repository

import (
	"reflect"
	"testing"
)

func TestCriteria_Where(t *testing.T) {
	testCases := []struct {
		name      string
		criteria  Criteria
		wantWhere string
		wantArgs  []any
	}{
		{
			name:      "empty",
			criteria:  Criteria{},
			wantWhere: "",
			wantArgs:  nil,
		},
		{
			name:      "organization and like",
			criteria:  Criteria{OrganizationIDs: []string{"org-1"}, NameLike: "%QA%"},
			wantWhere: " WHERE w.organization_id = ANY($1) AND w.name LIKE $2",
			wantArgs:  []any{[]string{"org-1"}, "%QA%"},
		},
		{
			name:      "id and exact name",
			criteria:  Criteria{IDs: []string{"ws-1", "ws-2"}, Name: "QA"},
			wantWhere: " WHERE w.id = ANY($1) AND w.name = $2",
			wantArgs:  []any{[]string{"ws-1", "ws-2"}, "QA"},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			where, args := tc.criteria.where()
			if where != tc.wantWhere {
				t.Errorf("where = %q, want %q", where, tc.wantWhere)
			}
			if !reflect.DeepEqual(args, tc.wantArgs) {
				t.Errorf("args = %#v, want %#v", args, tc.wantArgs)
			}
		})
	}
}
