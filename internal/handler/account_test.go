package handler

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/csemotors/csemotors-go/internal/model"
	"github.com/csemotors/csemotors-go/internal/service"
)

func (s *siteSuite) TestRegisterThenLogin() {
	resp, _ := s.post("/account/register", url.Values{
		"account_firstname": {"Basic"},
		"account_lastname":  {"Client"},
		"account_email":     {"Basic@340.edu"},
		"account_password":  {testPassword},
	})
	s.Require().Equal(http.StatusSeeOther, resp.StatusCode)
	s.Equal("/account/login", resp.Header.Get("Location"))

	_, body := s.follow(resp)
	s.Contains(body, "registered Basic. Please log in.")

	account, err := s.accounts.FindByEmail(context.Background(), "basic@340.edu")
	s.Require().NoError(err)
	s.Equal(model.AccountClient, account.Type)

	s.login("basic@340.edu")
	resp, body = s.get("/account/")
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Contains(body, "Welcome Basic")
	s.NotContains(body, "Manage Inventory")
}

func (s *siteSuite) TestRegistrationMissingFieldKeepsValues() {
	resp, body := s.post("/account/register", url.Values{
		"account_firstname": {""},
		"account_lastname":  {"Client"},
		"account_email":     {"new@340.edu"},
		"account_password":  {testPassword},
	})
	s.Equal(http.StatusBadRequest, resp.StatusCode)
	s.Contains(body, "Please provide a first name.")
	s.Contains(body, `value="Client"`)
	s.Contains(body, `value="new@340.edu"`)
	s.NotContains(body, testPassword)

	_, err := s.accounts.FindByEmail(context.Background(), "new@340.edu")
	s.ErrorIs(err, service.ErrAccountNotFound)
}

func (s *siteSuite) TestRegistrationDuplicateEmail() {
	s.createAccount("taken@340.edu", model.AccountClient)

	resp, body := s.post("/account/register", url.Values{
		"account_firstname": {"Other"},
		"account_lastname":  {"Person"},
		"account_email":     {"taken@340.edu"},
		"account_password":  {testPassword},
	})
	s.Equal(http.StatusConflict, resp.StatusCode)
	s.Contains(body, "Sorry, the registration failed.")
	s.Contains(body, `value="Other"`)
}

func (s *siteSuite) TestLoginFailuresAreIndistinguishable() {
	s.createAccount("basic@340.edu", model.AccountClient)

	wrongPw, wrongPwBody := s.post("/account/login", url.Values{
		"account_email":    {"basic@340.edu"},
		"account_password": {"Wr0ngPassword!"},
	})
	unknown, unknownBody := s.post("/account/login", url.Values{
		"account_email":    {"nobody@340.edu"},
		"account_password": {testPassword},
	})

	s.Equal(http.StatusBadRequest, wrongPw.StatusCode)
	s.Equal(http.StatusBadRequest, unknown.StatusCode)
	s.Contains(wrongPwBody, "Please check your credentials and try again.")
	s.Equal(
		s.bodyWithout(wrongPwBody, "basic@340.edu"),
		s.bodyWithout(unknownBody, "nobody@340.edu"),
	)
}

func (s *siteSuite) TestProtectedAccountRoutesRequireLogin() {
	for _, path := range []string{"/account/", "/account/update/1"} {
		resp, _ := s.get(path)
		s.Equal(http.StatusSeeOther, resp.StatusCode, path)
		s.Equal("/account/login", resp.Header.Get("Location"), path)
	}
}

func (s *siteSuite) TestEmployeeSeesInventoryLink() {
	s.loginAsEmployee()
	_, body := s.get("/account/")
	s.Contains(body, "Manage Inventory")
}

func (s *siteSuite) TestUpdateAccount() {
	a := s.createAccount("basic@340.edu", model.AccountClient)
	s.login("basic@340.edu")
	id := strconv.FormatInt(a.ID, 10)

	resp, body := s.get("/account/update/" + id)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.Contains(body, `value="basic@340.edu"`)

	resp, _ = s.post("/account/update", url.Values{
		"account_id":        {id},
		"account_firstname": {"Renamed"},
		"account_lastname":  {"Client"},
		"account_email":     {"renamed@340.edu"},
	})
	s.Require().Equal(http.StatusSeeOther, resp.StatusCode)

	_, body = s.follow(resp)
	s.Contains(body, "Account updated successfully.")
	s.Contains(body, "Welcome Renamed")

	got, err := s.accounts.GetAccount(context.Background(), a.ID)
	s.Require().NoError(err)
	s.Equal("renamed@340.edu", got.Email)
}

func (s *siteSuite) TestUpdateToTakenEmailMakesNoChange() {
	a := s.createAccount("basic@340.edu", model.AccountClient)
	s.createAccount("other@340.edu", model.AccountClient)
	s.login("basic@340.edu")

	resp, body := s.post("/account/update", url.Values{
		"account_id":        {strconv.FormatInt(a.ID, 10)},
		"account_firstname": {"Changed"},
		"account_lastname":  {"Client"},
		"account_email":     {"other@340.edu"},
	})
	s.Equal(http.StatusBadRequest, resp.StatusCode)
	s.Contains(body, "Email already exists. Please use a different email.")

	got, err := s.accounts.GetAccount(context.Background(), a.ID)
	s.Require().NoError(err)
	s.Equal("basic@340.edu", got.Email)
	s.Equal("Test", got.FirstName)
}

func (s *siteSuite) TestUpdateOtherAccountRejected() {
	s.createAccount("basic@340.edu", model.AccountClient)
	other := s.createAccount("other@340.edu", model.AccountClient)
	s.login("basic@340.edu")
	otherID := strconv.FormatInt(other.ID, 10)

	resp, _ := s.get("/account/update/" + otherID)
	s.Require().Equal(http.StatusSeeOther, resp.StatusCode)
	_, body := s.follow(resp)
	s.Contains(body, "You can only update your own account.")

	resp, _ = s.post("/account/update", url.Values{
		"account_id":        {otherID},
		"account_firstname": {"Hijacked"},
		"account_lastname":  {"Client"},
		"account_email":     {"hijack@340.edu"},
	})
	s.Equal(http.StatusSeeOther, resp.StatusCode)

	got, err := s.accounts.GetAccount(context.Background(), other.ID)
	s.Require().NoError(err)
	s.Equal("other@340.edu", got.Email)
}

func (s *siteSuite) TestUpdatePassword() {
	a := s.createAccount("basic@340.edu", model.AccountClient)
	s.login("basic@340.edu")
	id := strconv.FormatInt(a.ID, 10)

	resp, body := s.post("/account/update-password", url.Values{
		"account_id":       {id},
		"current_password": {"Wr0ngPassword!"},
		"new_password":     {"An0therSecret!!"},
		"confirm_password": {"An0therSecret!!"},
	})
	s.Equal(http.StatusBadRequest, resp.StatusCode)
	s.Contains(body, "Current password is incorrect.")

	resp, _ = s.post("/account/update-password", url.Values{"account_id": {id}})
	_, body = s.follow(resp)
	s.Contains(body, "No password change requested.")

	resp, _ = s.post("/account/update-password", url.Values{
		"account_id":       {id},
		"current_password": {testPassword},
		"new_password":     {"An0therSecret!!"},
		"confirm_password": {"An0therSecret!!"},
	})
	_, body = s.follow(resp)
	s.Contains(body, "Password updated successfully.")

	ok, err := s.accounts.CheckPassword(context.Background(), a.ID, "An0therSecret!!")
	s.Require().NoError(err)
	s.True(ok)
}

func (s *siteSuite) TestUpdatePasswordOfOtherAccountRevealsNothing() {
	s.createAccount("basic@340.edu", model.AccountClient)
	victim := s.createAccount("other@340.edu", model.AccountClient)
	s.login("basic@340.edu")
	victimID := strconv.FormatInt(victim.ID, 10)

	attempt := func(guess string) (int, string, string) {
		resp, _ := s.post("/account/update-password", url.Values{
			"account_id":       {victimID},
			"current_password": {guess},
			"new_password":     {"Hij4ckedSecret!!"},
			"confirm_password": {"Hij4ckedSecret!!"},
		})
		location := resp.Header.Get("Location")
		_, body := s.follow(resp)
		return resp.StatusCode, location, body
	}

	wrongStatus, wrongLocation, wrongBody := attempt("Wr0ngPassword!")
	rightStatus, rightLocation, rightBody := attempt(testPassword)

	s.Equal(http.StatusSeeOther, wrongStatus)
	s.Equal(wrongStatus, rightStatus)
	s.Equal("/account/", wrongLocation)
	s.Equal(wrongLocation, rightLocation)
	for _, body := range []string{wrongBody, rightBody} {
		s.Contains(body, "You can only update your own account.")
		s.NotContains(body, "Current password is incorrect.")
	}

	ok, err := s.accounts.CheckPassword(context.Background(), victim.ID, testPassword)
	s.Require().NoError(err)
	s.True(ok, "victim password unchanged")
}

func (s *siteSuite) TestPasswordWhitespaceKept() {
	a := s.createAccount("basic@340.edu", model.AccountClient)
	s.login("basic@340.edu")

	spaced := " Sp4ced Secret! "
	resp, _ := s.post("/account/update-password", url.Values{
		"account_id":       {strconv.FormatInt(a.ID, 10)},
		"current_password": {testPassword},
		"new_password":     {spaced},
		"confirm_password": {spaced},
	})
	s.Require().Equal(http.StatusSeeOther, resp.StatusCode)

	ok, err := s.accounts.CheckPassword(context.Background(), a.ID, spaced)
	s.Require().NoError(err)
	s.True(ok)
	ok, err = s.accounts.CheckPassword(context.Background(), a.ID, "Sp4ced Secret!")
	s.Require().NoError(err)
	s.False(ok)
}

func (s *siteSuite) TestLogout() {
	s.createAccount("basic@340.edu", model.AccountClient)
	s.login("basic@340.edu")

	resp, _ := s.get("/account/logout")
	s.Require().Equal(http.StatusSeeOther, resp.StatusCode)
	s.Equal("/", resp.Header.Get("Location"))

	_, body := s.follow(resp)
	s.Contains(body, "You have been successfully logged out.")
	s.Contains(body, "My Account")

	resp, _ = s.get("/account/")
	s.Equal(http.StatusSeeOther, resp.StatusCode)
}
