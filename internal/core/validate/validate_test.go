package validate

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vietddude/employees/internal/core/domain"
	"pgregory.net/rapid"
)

func TestID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"canonical", "3fa85f64-5717-4562-b3fc-2c963f66afa6", false},
		{"uppercase", "3FA85F64-5717-4562-B3FC-2C963F66AFA6", false},
		{"empty", "", true},
		{"whitespace", "   \t ", true},
		{"garbage", "not-a-uuid", true},
		{"unhyphenated", "3fa85f6457174562b3fc2c963f66afa6", true},
		{"braced", "{3fa85f64-5717-4562-b3fc-2c963f66afa6}", true},
		{"urn", "urn:uuid:3fa85f64-5717-4562-b3fc-2c963f66afa6", true},
		{"padded", " 3fa85f64-5717-4562-b3fc-2c963f66afa6", true},
		{"bad hex", "3fa85f64-5717-4562-b3fc-2c963f66afaz", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ID(tt.id)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInvalidIdentifier))
			assert.Equal(t, domain.KindInvalidIdentifier, domain.KindOf(err))
		})
	}
}

func TestID_AcceptsGeneratedUUIDs(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var raw [16]byte
		for i := range raw {
			raw[i] = rapid.Byte().Draw(t, "b")
		}
		if err := ID(uuid.UUID(raw).String()); err != nil {
			t.Fatalf("rejected canonical uuid: %v", err)
		}
	})
}

func TestCreateRequest_Valid(t *testing.T) {
	req := domain.CreateEmployeeRequest{
		Name:   "Jane Doe",
		Salary: domain.IntPtr(85000),
		Age:    domain.IntPtr(30),
		Title:  "Engineer",
	}
	assert.NoError(t, CreateRequest(req))
}

func TestCreateRequest_Violations(t *testing.T) {
	tests := []struct {
		name string
		req  domain.CreateEmployeeRequest
		want []string
	}{
		{
			name: "everything missing",
			req:  domain.CreateEmployeeRequest{Name: "  "},
			want: []string{
				"name: Employee name cannot be blank",
				"salary: Employee salary cannot be null",
				"age: Employee age cannot be null",
				"title: Employee title cannot be blank",
			},
		},
		{
			name: "zero salary",
			req:  domain.CreateEmployeeRequest{Name: "a", Salary: domain.IntPtr(0), Age: domain.IntPtr(20), Title: "t"},
			want: []string{"salary: Employee salary must be greater than zero"},
		},
		{
			name: "too young",
			req:  domain.CreateEmployeeRequest{Name: "a", Salary: domain.IntPtr(1), Age: domain.IntPtr(15), Title: "t"},
			want: []string{"age: Employee age must be at least 16"},
		},
		{
			name: "too old",
			req:  domain.CreateEmployeeRequest{Name: "a", Salary: domain.IntPtr(1), Age: domain.IntPtr(76), Title: "t"},
			want: []string{"age: Employee age must be at most 75"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CreateRequest(tt.req)
			require.Error(t, err)

			var de *domain.Error
			require.True(t, errors.As(err, &de))
			assert.Equal(t, domain.KindInvalidRequest, de.Kind)
			assert.Equal(t, tt.want, de.Violations)
		})
	}
}

func TestCreateRequest_AgeBoundsInclusive(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		age := rapid.IntRange(0, 120).Draw(t, "age")
		req := domain.CreateEmployeeRequest{
			Name:   "n",
			Salary: domain.IntPtr(1),
			Age:    domain.IntPtr(age),
			Title:  "t",
		}
		err := CreateRequest(req)
		if inRange := age >= 16 && age <= 75; inRange != (err == nil) {
			t.Fatalf("age %d: err = %v", age, err)
		}
	})
}
