package jsonpatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elcukro/home-budget-sub000/internal/model"
)

func TestDiffObjects(t *testing.T) {
	a := map[string]interface{}{"keep": 1.0, "gone": "x", "change": 2.0}
	b := map[string]interface{}{"keep": 1.0, "change": 3.0, "new/key": true}

	ops := Diff(a, b, "")
	assert.Equal(t, []model.PatchOp{
		{Op: "remove", Path: "/gone"},
		{Op: "replace", Path: "/change", Value: 3.0},
		{Op: "add", Path: "/new~1key", Value: true},
	}, ops)
}

func TestDiffArraysRemoveFromTail(t *testing.T) {
	a := []interface{}{"a", "b", "c"}
	b := []interface{}{"a"}

	ops := Diff(a, b, "/items")
	assert.Equal(t, []model.PatchOp{
		{Op: "remove", Path: "/items/2"},
		{Op: "remove", Path: "/items/1"},
	}, ops)
}

func TestDiffTypeChangeReplaces(t *testing.T) {
	ops := Diff(map[string]interface{}{}, []interface{}{}, "/x")
	require.Len(t, ops, 1)
	assert.Equal(t, "replace", ops[0].Op)
}

func TestBetweenRecords(t *testing.T) {
	before := model.OnboardingRecord{Income: model.IncomeData{SalaryNet: 5000}}
	after := before
	after.Income.SalaryNet = 0

	ops, err := Between(before, after)
	require.NoError(t, err)
	assert.Equal(t, []model.PatchOp{{Op: "replace", Path: "/income/salaryNet", Value: 0.0}}, ops)

	ops, err = Between(after, after)
	require.NoError(t, err)
	assert.Empty(t, ops)
}

func TestDiffJSONRejectsGarbage(t *testing.T) {
	_, err := DiffJSON([]byte(`{}`), []byte(`{`))
	assert.Error(t, err)
}
