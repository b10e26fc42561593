package handler

import (
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/csemotors/csemotors-go/internal/model"
	"github.com/csemotors/csemotors-go/internal/service"
	"github.com/csemotors/csemotors-go/internal/session"
	"github.com/csemotors/csemotors-go/internal/validation"
	"github.com/csemotors/csemotors-go/internal/view"
)

const (
	msgVehicleNotFound       = "Vehicle not found."
	msgClassificationExists  = "That classification already exists."
	msgClassificationFailed  = "Sorry, adding the classification failed."
	msgUnknownClassification = "Please select a classification."
	msgAddVehicleFailed      = "Sorry, adding the vehicle failed."
	msgUpdateVehicleFailed   = "Sorry, the update failed."
	msgDeleteVehicleFailed   = "Sorry, the delete failed."
	msgInvalidClassification = "invalid classification id"
	msgInventoryUnavailable  = "could not load inventory"
	managementPath           = "/inv/"
)

// InventoryHandler serves the public catalog and the staff inventory tools.
type InventoryHandler struct {
	inventory *service.InventoryService
	render    Renderer
	notices   *session.Notices
	errors    *ErrorHandler
}

// NewInventoryHandler creates a new InventoryHandler.
func NewInventoryHandler(inventory *service.InventoryService, render Renderer, notices *session.Notices, errs *ErrorHandler) *InventoryHandler {
	return &InventoryHandler{inventory: inventory, render: render, notices: notices, errors: errs}
}

// ByClassification handles GET /inv/type/{classificationID} requests.
func (h *InventoryHandler) ByClassification(w http.ResponseWriter, r *http.Request) {
	classificationID, ok := urlID(r, "classificationID")
	if !ok {
		h.errors.NotFound(w, r)
		return
	}

	class, vehicles, err := h.inventory.VehiclesByClassification(r.Context(), classificationID)
	status, title := http.StatusOK, ""
	switch {
	case errors.Is(err, service.ErrClassificationNotFound):
		status, title = http.StatusNotFound, "No Vehicles Found"
	case err != nil:
		h.errors.ServerError(w, r, err)
		return
	default:
		title = class.Name + " vehicles"
	}

	grid, err := view.ClassificationGrid(vehicles)
	if err != nil {
		h.errors.ServerError(w, r, err)
		return
	}
	h.render.Render(w, r, status, "inventory/classification", view.Page{
		Title: title,
		Data:  view.GridView{Grid: grid},
	})
}

// Detail handles GET /inv/detail/{vehicleID} requests.
func (h *InventoryHandler) Detail(w http.ResponseWriter, r *http.Request) {
	vehicleID, ok := urlID(r, "vehicleID")
	if !ok {
		h.errors.NotFound(w, r)
		return
	}

	v, err := h.inventory.Vehicle(r.Context(), vehicleID)
	status, title := http.StatusOK, ""
	switch {
	case errors.Is(err, service.ErrVehicleNotFound):
		status, title = http.StatusNotFound, "Vehicle Not Found"
	case err != nil:
		h.errors.ServerError(w, r, err)
		return
	default:
		title = v.Title()
	}

	detail, err := view.VehicleDetail(v)
	if err != nil {
		h.errors.ServerError(w, r, err)
		return
	}
	h.render.Render(w, r, status, "inventory/detail", view.Page{
		Title: title,
		Data:  view.DetailView{Detail: detail},
	})
}

// Management handles GET /inv/ requests.
func (h *InventoryHandler) Management(w http.ResponseWriter, r *http.Request) {
	h.renderManagement(w, r, http.StatusOK, nil)
}

func (h *InventoryHandler) renderManagement(w http.ResponseWriter, r *http.Request, status int, notices []session.Notice) {
	sel, err := h.classificationSelect(r, 0)
	if err != nil {
		h.errors.ServerError(w, r, err)
		return
	}
	h.render.Render(w, r, status, "inventory/management", view.Page{
		Title:   "Vehicle Management",
		Notices: notices,
		Data:    view.InventoryManagementView{Select: sel},
	})
}

// AddClassificationView handles GET /inv/add-classification requests.
func (h *InventoryHandler) AddClassificationView(w http.ResponseWriter, r *http.Request) {
	h.renderAddClassification(w, r, http.StatusOK, "", nil, nil)
}

// AddClassification handles POST /inv/add-classification requests after validation.
func (h *InventoryHandler) AddClassification(w http.ResponseWriter, r *http.Request) {
	form, _ := validation.FormFrom[validation.ClassificationForm](r.Context())

	class, err := h.inventory.AddClassification(r.Context(), form.Name)
	if err != nil {
		if errors.Is(err, service.ErrClassificationExists) {
			h.renderAddClassification(w, r, http.StatusConflict, form.Name, validation.Errors{{Field: "classification_name", Message: msgClassificationExists}}, nil)
			return
		}
		slog.Error("add classification failed", "name", form.Name, "error", err)
		h.renderAddClassification(w, r, http.StatusInternalServerError, form.Name, nil, notice(msgClassificationFailed))
		return
	}

	slog.Info("classification added", "classification_id", class.ID)
	h.renderManagement(w, r, http.StatusCreated, []session.Notice{{
		Kind:    session.KindSuccess,
		Message: fmt.Sprintf("The %s classification was successfully added.", class.Name),
	}})
}

func (h *InventoryHandler) reconstructClassification(w http.ResponseWriter, r *http.Request, f *validation.ClassificationForm, errs validation.Errors) {
	h.renderAddClassification(w, r, http.StatusBadRequest, f.Name, errs, nil)
}

func (h *InventoryHandler) renderAddClassification(w http.ResponseWriter, r *http.Request, status int, name string, errs validation.Errors, notices []session.Notice) {
	h.render.Render(w, r, status, "inventory/add-classification", view.Page{
		Title:   "Add New Classification",
		Errors:  errs,
		Notices: notices,
		Data:    view.ClassificationFormView{Name: name},
	})
}

// AddInventoryView handles GET /inv/add-inventory requests.
func (h *InventoryHandler) AddInventoryView(w http.ResponseWriter, r *http.Request) {
	h.renderVehicleForm(w, r, http.StatusOK, "inventory/add-inventory", validation.VehicleForm{
		Image:     model.DefaultVehicleImage,
		Thumbnail: model.DefaultVehicleThumbnail,
	}, nil, nil)
}

// AddInventory handles POST /inv/add-inventory requests after validation.
func (h *InventoryHandler) AddInventory(w http.ResponseWriter, r *http.Request) {
	form, _ := validation.FormFrom[validation.VehicleForm](r.Context())

	v, err := form.Vehicle()
	if err == nil {
		err = h.inventory.AddVehicle(r.Context(), &v)
	}
	if err != nil {
		if errors.Is(err, service.ErrUnknownClassification) {
			h.renderVehicleForm(w, r, http.StatusBadRequest, "inventory/add-inventory", *form, validation.Errors{{Field: "classification_id", Message: msgUnknownClassification}}, nil)
			return
		}
		slog.Error("add vehicle failed", "error", err)
		h.renderVehicleForm(w, r, http.StatusInternalServerError, "inventory/add-inventory", *form, nil, notice(msgAddVehicleFailed))
		return
	}

	slog.Info("vehicle added", "inv_id", v.ID)
	h.notices.Success(w, r, fmt.Sprintf("The %s was successfully added.", v.Name()))
	http.Redirect(w, r, managementPath, http.StatusSeeOther)
}

func (h *InventoryHandler) reconstructAddInventory(w http.ResponseWriter, r *http.Request, f *validation.VehicleForm, errs validation.Errors) {
	h.renderVehicleForm(w, r, http.StatusBadRequest, "inventory/add-inventory", *f, errs, nil)
}

// EditView handles GET /inv/edit/{vehicleID} requests.
func (h *InventoryHandler) EditView(w http.ResponseWriter, r *http.Request) {
	vehicleID, ok := urlID(r, "vehicleID")
	if !ok {
		h.errors.NotFound(w, r)
		return
	}

	v, err := h.inventory.Vehicle(r.Context(), vehicleID)
	if err != nil {
		if errors.Is(err, service.ErrVehicleNotFound) {
			h.render.Render(w, r, http.StatusNotFound, "inventory/edit", view.Page{
				Title: "Vehicle Not Found",
				Data:  view.VehicleFormView{},
			})
			return
		}
		h.errors.ServerError(w, r, err)
		return
	}

	h.renderVehicleForm(w, r, http.StatusOK, "inventory/edit", validation.VehicleFormFrom(v), nil, nil)
}

// Update handles POST /inv/update requests after validation.
func (h *InventoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	form, _ := validation.FormFrom[validation.VehicleForm](r.Context())

	v, err := form.Vehicle()
	if err == nil && v.ID == 0 {
		err = service.ErrVehicleNotFound
	}
	if err == nil {
		err = h.inventory.UpdateVehicle(r.Context(), &v)
	}
	if err != nil {
		switch {
		case errors.Is(err, service.ErrVehicleNotFound):
			h.notices.Notice(w, r, msgVehicleNotFound)
			http.Redirect(w, r, managementPath, http.StatusSeeOther)
		case errors.Is(err, service.ErrUnknownClassification):
			h.renderVehicleForm(w, r, http.StatusBadRequest, "inventory/edit", *form, validation.Errors{{Field: "classification_id", Message: msgUnknownClassification}}, nil)
		default:
			slog.Error("update vehicle failed", "inv_id", v.ID, "error", err)
			h.renderVehicleForm(w, r, http.StatusInternalServerError, "inventory/edit", *form, nil, notice(msgUpdateVehicleFailed))
		}
		return
	}

	slog.Info("vehicle updated", "inv_id", v.ID)
	h.notices.Success(w, r, fmt.Sprintf("The %s was successfully updated.", v.Name()))
	http.Redirect(w, r, managementPath, http.StatusSeeOther)
}

func (h *InventoryHandler) reconstructEdit(w http.ResponseWriter, r *http.Request, f *validation.VehicleForm, errs validation.Errors) {
	h.renderVehicleForm(w, r, http.StatusBadRequest, "inventory/edit", *f, errs, nil)
}

func (h *InventoryHandler) renderVehicleForm(w http.ResponseWriter, r *http.Request, status int, page string, f validation.VehicleForm, errs validation.Errors, notices []session.Notice) {
	sel, err := h.classificationSelect(r, f.ClassificationIDValue())
	if err != nil {
		h.errors.ServerError(w, r, err)
		return
	}

	title := "Add New Vehicle"
	if page == "inventory/edit" {
		title = "Edit " + f.Make + " " + f.Model
	}
	h.render.Render(w, r, status, page, view.Page{
		Title:   title,
		Errors:  errs,
		Notices: notices,
		Data:    view.VehicleFormView{Select: sel, Form: f, Found: true},
	})
}

// DeleteView handles GET /inv/delete/{vehicleID} requests.
func (h *InventoryHandler) DeleteView(w http.ResponseWriter, r *http.Request) {
	vehicleID, ok := urlID(r, "vehicleID")
	if !ok {
		h.errors.NotFound(w, r)
		return
	}

	v, err := h.inventory.Vehicle(r.Context(), vehicleID)
	status, title := http.StatusOK, ""
	switch {
	case errors.Is(err, service.ErrVehicleNotFound):
		status, title = http.StatusNotFound, "Vehicle Not Found"
	case err != nil:
		h.errors.ServerError(w, r, err)
		return
	default:
		title = "Delete " + v.Name()
	}

	h.render.Render(w, r, status, "inventory/delete", view.Page{
		Title: title,
		Data:  view.DeleteView{Vehicle: v},
	})
}

// Delete handles POST /inv/delete requests.
func (h *InventoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.errors.NotFound(w, r)
		return
	}
	vehicleID, err := strconv.ParseInt(r.PostForm.Get("inv_id"), 10, 64)
	if err != nil {
		h.notices.Notice(w, r, msgVehicleNotFound)
		http.Redirect(w, r, managementPath, http.StatusSeeOther)
		return
	}

	v, err := h.inventory.DeleteVehicle(r.Context(), vehicleID)
	if err != nil {
		if errors.Is(err, service.ErrVehicleNotFound) {
			h.notices.Notice(w, r, msgVehicleNotFound)
			http.Redirect(w, r, managementPath, http.StatusSeeOther)
			return
		}
		slog.Error("delete vehicle failed", "inv_id", vehicleID, "error", err)
		h.notices.Notice(w, r, msgDeleteVehicleFailed)
		http.Redirect(w, r, fmt.Sprintf("/inv/delete/%d", vehicleID), http.StatusSeeOther)
		return
	}

	slog.Info("vehicle deleted", "inv_id", vehicleID)
	h.notices.Success(w, r, fmt.Sprintf("The %s was successfully deleted.", v.Name()))
	http.Redirect(w, r, managementPath, http.StatusSeeOther)
}

// GetInventory handles GET /inv/getInventory/{classificationID} requests.
func (h *InventoryHandler) GetInventory(w http.ResponseWriter, r *http.Request) {
	classificationID, ok := urlID(r, "classificationID")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse(msgInvalidClassification))
		return
	}

	vehicles, err := h.inventory.Inventory(r.Context(), classificationID)
	if err != nil {
		slog.Error("inventory lookup failed", "classification_id", classificationID, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse(msgInventoryUnavailable))
		return
	}

	writeJSON(w, http.StatusOK, vehicles)
}

func (h *InventoryHandler) classificationSelect(r *http.Request, selected int64) (template.HTML, error) {
	classes, err := h.inventory.Classifications(r.Context())
	if err != nil {
		return "", err
	}
	return view.ClassificationSelect(classes, selected)
}

func urlID(r *http.Request, param string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
