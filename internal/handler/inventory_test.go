package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/csemotors/csemotors-go/internal/model"
	"github.com/csemotors/csemotors-go/internal/service"
)

func vehicleForm(classificationID string) url.Values {
	return url.Values{
		"classification_id": {classificationID},
		"inv_make":          {"Jeep"},
		"inv_model":         {"Wrangler"},
		"inv_year":          {"2019"},
		"inv_description":   {"The Jeep Wrangler is small and compact."},
		"inv_image":         {"/images/vehicles/wrangler.jpg"},
		"inv_thumbnail":     {"/images/vehicles/wrangler-tn.jpg"},
		"inv_price":         {"28045"},
		"inv_miles":         {"41205"},
		"inv_color":         {"Yellow"},
	}
}

func (s *siteSuite) addVehicle(classificationID int64) *model.Vehicle {
	v := &model.Vehicle{
		Make:             "Jeep",
		Model:            "Wrangler",
		Year:             2019,
		Description:      "The Jeep Wrangler is small and compact.",
		Price:            28045,
		Miles:            41205,
		Color:            "Yellow",
		ClassificationID: classificationID,
	}
	s.Require().NoError(s.inventory.AddVehicle(context.Background(), v))
	return v
}

func (s *siteSuite) TestClassificationView() {
	s.addVehicle(4)

	resp, body := s.get("/inv/type/4")
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Contains(body, "SUV vehicles")
	s.Contains(body, "Jeep Wrangler")
	s.Contains(body, "$28,045")

	resp, body = s.get("/inv/type/2")
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Contains(body, "Sorry, no matching vehicles could be found.")

	resp, _ = s.get("/inv/type/999")
	s.Equal(http.StatusNotFound, resp.StatusCode)

	resp, _ = s.get("/inv/type/abc")
	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *siteSuite) TestDetailView() {
	v := s.addVehicle(4)

	resp, body := s.get("/inv/detail/" + strconv.FormatInt(v.ID, 10))
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Contains(body, "2019 Jeep Wrangler")
	s.Contains(body, "41,205 miles")
	s.Contains(body, model.DefaultVehicleImage)

	resp, body = s.get("/inv/detail/999")
	s.Equal(http.StatusNotFound, resp.StatusCode)
	s.Contains(body, "Vehicle not found.")
}

func (s *siteSuite) TestManagementView() {
	s.loginAsEmployee()

	resp, body := s.get("/inv/")
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Contains(body, "Vehicle Management")
	s.Contains(body, `<option value="4">SUV</option>`)
}

func (s *siteSuite) TestAddClassification() {
	s.loginAsEmployee()

	resp, body := s.post("/inv/add-classification", url.Values{"classification_name": {"Electric"}})
	s.Equal(http.StatusCreated, resp.StatusCode)
	s.Contains(body, "The Electric classification was successfully added.")
	s.Contains(body, ">Electric</option>")

	resp, body = s.post("/inv/add-classification", url.Values{"classification_name": {"electric"}})
	s.Equal(http.StatusConflict, resp.StatusCode)
	s.Contains(body, "That classification already exists.")

	resp, body = s.post("/inv/add-classification", url.Values{"classification_name": {"Off Road"}})
	s.Equal(http.StatusBadRequest, resp.StatusCode)
	s.Contains(body, "Classification name may only contain letters and numbers.")
	s.Contains(body, `value="Off Road"`)
}

func (s *siteSuite) TestAddInventoryView() {
	s.loginAsEmployee()

	resp, body := s.get("/inv/add-inventory")
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Contains(body, `value="`+model.DefaultVehicleImage+`"`)
	s.Contains(body, `value="`+model.DefaultVehicleThumbnail+`"`)
}

func (s *siteSuite) TestAddInventory() {
	s.loginAsEmployee()

	resp, _ := s.post("/inv/add-inventory", vehicleForm("4"))
	s.Require().Equal(http.StatusSeeOther, resp.StatusCode)
	s.Equal("/inv/", resp.Header.Get("Location"))

	_, body := s.follow(resp)
	s.Contains(body, "The Jeep Wrangler was successfully added.")

	vehicles, err := s.inventory.Inventory(context.Background(), 4)
	s.Require().NoError(err)
	s.Require().Len(vehicles, 1)
	s.Equal(41205, vehicles[0].Miles)
}

func (s *siteSuite) TestAddInventoryInvalidKeepsValues() {
	s.loginAsEmployee()

	form := vehicleForm("4")
	form.Set("inv_make", "")
	form.Set("inv_year", "1850")

	resp, body := s.post("/inv/add-inventory", form)
	s.Equal(http.StatusBadRequest, resp.StatusCode)
	s.Contains(body, `value="Wrangler"`)
	s.Contains(body, `value="1850"`)
	s.Contains(body, `<option value="4" selected>SUV</option>`)

	vehicles, err := s.inventory.Inventory(context.Background(), 4)
	s.Require().NoError(err)
	s.Empty(vehicles)
}

func (s *siteSuite) TestAddInventoryUnknownClassification() {
	s.loginAsEmployee()

	resp, body := s.post("/inv/add-inventory", vehicleForm("999"))
	s.Equal(http.StatusBadRequest, resp.StatusCode)
	s.Contains(body, "Please select a classification.")
	s.Contains(body, `value="Wrangler"`)
}

func (s *siteSuite) TestEditAndUpdateVehicle() {
	s.loginAsEmployee()
	v := s.addVehicle(4)
	id := strconv.FormatInt(v.ID, 10)

	resp, body := s.get("/inv/edit/" + id)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Contains(body, "Edit Jeep Wrangler")
	s.Contains(body, `value="Yellow"`)

	resp, _ = s.get("/inv/edit/999")
	s.Equal(http.StatusNotFound, resp.StatusCode)

	form := vehicleForm("4")
	form.Set("inv_id", id)
	form.Set("inv_color", "Red")
	resp, _ = s.post("/inv/update", form)
	s.Require().Equal(http.StatusSeeOther, resp.StatusCode)
	_, body = s.follow(resp)
	s.Contains(body, "The Jeep Wrangler was successfully updated.")

	got, err := s.inventory.Vehicle(context.Background(), v.ID)
	s.Require().NoError(err)
	s.Equal("Red", got.Color)

	form.Set("inv_id", "999")
	resp, _ = s.post("/inv/update", form)
	_, body = s.follow(resp)
	s.Contains(body, "Vehicle not found.")
}

func (s *siteSuite) TestDeleteVehicle() {
	s.loginAsEmployee()
	v := s.addVehicle(4)
	id := strconv.FormatInt(v.ID, 10)

	resp, body := s.get("/inv/delete/" + id)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Contains(body, "Delete Jeep Wrangler")

	resp, _ = s.post("/inv/delete", url.Values{"inv_id": {id}})
	s.Require().Equal(http.StatusSeeOther, resp.StatusCode)
	_, body = s.follow(resp)
	s.Contains(body, "The Jeep Wrangler was successfully deleted.")

	_, err := s.inventory.Vehicle(context.Background(), v.ID)
	s.ErrorIs(err, service.ErrVehicleNotFound)

	resp, _ = s.get("/inv/delete/" + id)
	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *siteSuite) TestDeleteMissingVehicle() {
	s.loginAsEmployee()
	s.addVehicle(4)

	resp, _ := s.post("/inv/delete", url.Values{"inv_id": {"999"}})
	s.Require().Equal(http.StatusSeeOther, resp.StatusCode)
	s.Equal("/inv/", resp.Header.Get("Location"))

	_, body := s.follow(resp)
	s.Contains(body, "Vehicle not found.")

	vehicles, err := s.inventory.Inventory(context.Background(), 4)
	s.Require().NoError(err)
	s.Len(vehicles, 1)
}

func (s *siteSuite) TestGetInventoryJSON() {
	s.loginAsEmployee()
	v := s.addVehicle(4)

	resp, body := s.get("/inv/getInventory/4")
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.Equal("application/json", resp.Header.Get("Content-Type"))

	var vehicles []model.Vehicle
	s.Require().NoError(json.Unmarshal([]byte(body), &vehicles))
	s.Require().Len(vehicles, 1)
	s.Equal(v.ID, vehicles[0].ID)
	s.Equal("SUV", vehicles[0].ClassificationName)

	resp, body = s.get("/inv/getInventory/2")
	s.Equal(http.StatusOK, resp.StatusCode)
	s.JSONEq(`[]`, body)

	resp, body = s.get("/inv/getInventory/abc")
	s.Equal(http.StatusBadRequest, resp.StatusCode)
	s.JSONEq(`{"error":"invalid classification id"}`, body)
}

func (s *siteSuite) TestGetInventoryStoreFailure() {
	s.loginAsEmployee()
	s.get("/")
	s.Require().NoError(s.db.Close())

	resp, body := s.get("/inv/getInventory/4")
	s.Equal(http.StatusInternalServerError, resp.StatusCode)
	s.JSONEq(`{"error":"could not load inventory"}`, body)
}
