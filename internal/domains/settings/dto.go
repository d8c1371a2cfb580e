package settings

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type UpsertSettingReq struct {
	Value string `json:"value"`
}

func (r UpsertSettingReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Value, validation.Length(0, 10000)),
	)
}
