package types

import "net/url"

type RegisterRequest struct {
	FullName      string `json:"fullName" validate:"required"`
	Email         string `json:"email" validate:"required,simple_email"`
	ContactNumber string `json:"contactNumber" validate:"required"`
	Password      string `json:"password" validate:"required"`
}

func (r *RegisterRequest) FromForm(v url.Values) {
	r.FullName = v.Get("fullName")
	r.Email = v.Get("email")
	r.ContactNumber = v.Get("contactNumber")
	r.Password = v.Get("password")
}

type LoginRequest struct {
	LoginID  string `json:"loginId" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) FromForm(v url.Values) {
	r.LoginID = v.Get("loginId")
	r.Password = v.Get("password")
}
