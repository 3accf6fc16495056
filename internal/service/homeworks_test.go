package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Roma7-7-7/homework-notifier/internal/service"
)

func TestCheckResponse(t *testing.T) {
	hw1 := map[string]any{"status": "approved", "homework_name": "hw1"}
	hw2 := map[string]any{"status": "rejected", "homework_name": "hw2"}

	tests := []struct {
		name    string
		resp    any
		want    service.CheckResult
		wantErr assert.ErrorAssertionFunc
	}{
		{
			name:    "first_homework",
			resp:    map[string]any{"homeworks": []any{hw1, hw2}, "current_date": float64(1700000000)},
			want:    service.CheckResult{Homework: hw1},
			wantErr: assert.NoError,
		},
		{
			name:    "empty_list",
			resp:    map[string]any{"homeworks": []any{}},
			want:    service.CheckResult{Empty: true},
			wantErr: assert.NoError,
		},
		{
			name: "error_not_an_object",
			resp: []any{hw1},
			wantErr: func(t assert.TestingT, err error, i ...interface{}) bool {
				return assert.ErrorIs(t, err, service.ErrInvalidType, i...) &&
					assert.EqualError(t, err, "invalid type: response is list instead of object", i...)
			},
		},
		{
			name: "error_null",
			resp: nil,
			wantErr: func(t assert.TestingT, err error, i ...interface{}) bool {
				return assert.ErrorIs(t, err, service.ErrInvalidType, i...)
			},
		},
		{
			name: "error_missing_homeworks",
			resp: map[string]any{"current_date": float64(1700000000)},
			wantErr: func(t assert.TestingT, err error, i ...interface{}) bool {
				return assert.ErrorIs(t, err, service.ErrMissingHomeworks, i...) &&
					assert.NotErrorIs(t, err, service.ErrInvalidType, i...)
			},
		},
		{
			name: "error_homeworks_not_a_list",
			resp: map[string]any{"homeworks": map[string]any{"status": "approved"}},
			wantErr: func(t assert.TestingT, err error, i ...interface{}) bool {
				return assert.ErrorIs(t, err, service.ErrInvalidType, i...) &&
					assert.EqualError(t, err, "invalid type: homeworks is object instead of list", i...)
			},
		},
		{
			name: "error_homeworks_null",
			resp: map[string]any{"homeworks": nil},
			wantErr: func(t assert.TestingT, err error, i ...interface{}) bool {
				return assert.ErrorIs(t, err, service.ErrMissingHomeworks, i...) &&
					assert.NotErrorIs(t, err, service.ErrInvalidType, i...)
			},
		},
		{
			name: "error_homework_not_an_object",
			resp: map[string]any{"homeworks": []any{"hw1"}},
			wantErr: func(t assert.TestingT, err error, i ...interface{}) bool {
				return assert.ErrorIs(t, err, service.ErrInvalidType, i...)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := service.CheckResponse(tt.resp)
			if !tt.wantErr(t, err, "CheckResponse()") {
				return
			}
			assert.Equal(t, tt.want, got, "CheckResponse()")
		})
	}
}

func TestCheckResult_Message(t *testing.T) {
	res, err := service.CheckResponse(map[string]any{"homeworks": []any{}})
	assert.NoError(t, err)
	assert.Equal(t, "У домашки не появился новый статус", res.Message())
	assert.Equal(t, service.NoNewStatus, res.Message())

	assert.Empty(t, service.CheckResult{Homework: map[string]any{}}.Message())
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		name    string
		hw      map[string]any
		want    string
		wantErr assert.ErrorAssertionFunc
	}{
		{
			name:    "approved",
			hw:      map[string]any{"status": "approved", "homework_name": "hw1"},
			want:    `Изменился статус проверки работы "hw1". Работа проверена: ревьюеру всё понравилось. Ура!`,
			wantErr: assert.NoError,
		},
		{
			name:    "reviewing",
			hw:      map[string]any{"status": "reviewing", "homework_name": "user__project.zip"},
			want:    `Изменился статус проверки работы "user__project.zip". Работа взята на проверку ревьюером.`,
			wantErr: assert.NoError,
		},
		{
			name:    "rejected",
			hw:      map[string]any{"status": "rejected", "homework_name": "hw3", "id": float64(3)},
			want:    `Изменился статус проверки работы "hw3". Работа проверена: у ревьюера есть замечания.`,
			wantErr: assert.NoError,
		},
		{
			name: "error_missing_status",
			hw:   map[string]any{"homework_name": "hw1"},
			wantErr: func(t assert.TestingT, err error, i ...interface{}) bool {
				return assert.ErrorIs(t, err, service.ErrKey, i...) &&
					assert.EqualError(t, err, `invalid key: "status" is missing`, i...)
			},
		},
		{
			name: "error_unknown_status",
			hw:   map[string]any{"status": "unknown", "homework_name": "hw1"},
			wantErr: func(t assert.TestingT, err error, i ...interface{}) bool {
				return assert.ErrorIs(t, err, service.ErrKey, i...) &&
					assert.ErrorIs(t, err, service.ErrUnknownStatus, i...) &&
					assert.EqualError(t, err, "invalid key: unknown homework status: unknown", i...)
			},
		},
		{
			name: "error_status_not_a_string",
			hw:   map[string]any{"status": float64(1), "homework_name": "hw1"},
			wantErr: func(t assert.TestingT, err error, i ...interface{}) bool {
				return assert.ErrorIs(t, err, service.ErrKey, i...) &&
					assert.ErrorIs(t, err, service.ErrUnknownStatus, i...)
			},
		},
		{
			name: "error_missing_homework_name",
			hw:   map[string]any{"status": "approved"},
			wantErr: func(t assert.TestingT, err error, i ...interface{}) bool {
				return assert.ErrorIs(t, err, service.ErrKey, i...) &&
					assert.EqualError(t, err, `invalid key: "homework_name" is missing`, i...)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := service.ParseStatus(tt.hw)
			if !tt.wantErr(t, err, "ParseStatus()") {
				return
			}
			assert.Equal(t, tt.want, got, "ParseStatus()")
		})
	}
}

func TestVerdict(t *testing.T) {
	for status, want := range map[string]string{
		"approved":  "Работа проверена: ревьюеру всё понравилось. Ура!",
		"reviewing": "Работа взята на проверку ревьюером.",
		"rejected":  "Работа проверена: у ревьюера есть замечания.",
	} {
		got, ok := service.Verdict(status)
		assert.True(t, ok, status)
		assert.Equal(t, want, got, status)
	}

	_, ok := service.Verdict("")
	assert.False(t, ok)
}
