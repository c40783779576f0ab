package actions

import "github.com/elcukro/home-budget-sub000/internal/model"

var registry = map[string]Handler{
	model.ActionUpdate: &UpdateHandler{},
	model.ActionNext:   &NextHandler{},
	model.ActionBack:   &BackHandler{},
	model.ActionSkip:   &SkipHandler{},
	model.ActionReset:  &ResetHandler{},
	model.ActionFinish: &FinishHandler{},
}

func Get(name string) (Handler, bool) {
	h, ok := registry[name]
	return h, ok
}
