package main

import (
	"net/http"
	"strconv"
	"strings"

	"bitbucket.org/mmdatafocus/property_backend/models"
	"bitbucket.org/mmdatafocus/property_backend/models/reports"
	"bitbucket.org/mmdatafocus/property_backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

func idParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func intQuery(c *gin.Context, name string) *int {
	v := strings.TrimSpace(c.Query(name))
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return nil
	}
	return &n
}

func dateQuery(c *gin.Context, name string) (models.MyDateString, bool) {
	var d models.MyDateString
	v := strings.TrimSpace(c.Query(name))
	if v == "" {
		return d, false
	}
	if err := d.UnmarshalJSON([]byte(strconv.Quote(v))); err != nil {
		return d, false
	}
	return d, true
}

func bindJSON(c *gin.Context, dest interface{}) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": utils.ProcessValidationErrors(verrs)})
			return false
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return false
	}
	return true
}

func respond(c *gin.Context, data interface{}, err error) {
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": data})
}

/*
	auth
*/

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func loginHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if !bindJSON(c, &req) {
			return
		}
		info, err := models.Login(c.Request.Context(), req.Username, req.Password)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": info})
	}
}

func logoutHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := models.Logout(c.Request.Context())
		respond(c, ok, err)
	}
}

type registerRequest struct {
	Business  models.NewBusiness `json:"business" binding:"required"`
	OwnerName string             `json:"owner_name"`
}

func registerBusinessHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req registerRequest
		if !bindJSON(c, &req) {
			return
		}
		business, err := models.CreateBusiness(c.Request.Context(), &req.Business, req.OwnerName)
		respond(c, business, err)
	}
}

func getBusinessHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		business, err := models.GetBusiness(c.Request.Context())
		respond(c, business, err)
	}
}

func updateBusinessHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewBusiness
		if !bindJSON(c, &input) {
			return
		}
		business, err := models.UpdateBusiness(c.Request.Context(), &input)
		respond(c, business, err)
	}
}

/*
	users
*/

func listUsersHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := models.GetAllUsers(c.Request.Context())
		respond(c, users, err)
	}
}

func createUserHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewUser
		if !bindJSON(c, &input) {
			return
		}
		user, err := models.CreateUser(c.Request.Context(), &input)
		respond(c, user, err)
	}
}

func getUserHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		user, err := models.GetUser(c.Request.Context(), id)
		respond(c, user, err)
	}
}

func updateUserHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		var input models.NewUser
		if !bindJSON(c, &input) {
			return
		}
		user, err := models.UpdateUser(c.Request.Context(), id, &input)
		respond(c, user, err)
	}
}

func deleteUserHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		user, err := models.DeleteUser(c.Request.Context(), id)
		respond(c, user, err)
	}
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

func changePasswordHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req changePasswordRequest
		if !bindJSON(c, &req) {
			return
		}
		user, err := models.ChangePassword(c.Request.Context(), req.OldPassword, req.NewPassword)
		respond(c, user, err)
	}
}

/*
	properties
*/

func listPropertiesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		properties, err := models.GetProperties(c.Request.Context())
		respond(c, properties, err)
	}
}

func createPropertyHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewProperty
		if !bindJSON(c, &input) {
			return
		}
		property, err := models.CreateProperty(c.Request.Context(), &input)
		respond(c, property, err)
	}
}

func getPropertyHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		property, err := models.GetProperty(c.Request.Context(), id)
		respond(c, property, err)
	}
}

func updatePropertyHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		var input models.NewProperty
		if !bindJSON(c, &input) {
			return
		}
		property, err := models.UpdateProperty(c.Request.Context(), id, &input)
		respond(c, property, err)
	}
}

func deletePropertyHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		property, err := models.DeleteProperty(c.Request.Context(), id)
		respond(c, property, err)
	}
}

type toggleActiveRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

func togglePropertyHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		var req toggleActiveRequest
		if !bindJSON(c, &req) {
			return
		}
		property, err := models.ToggleActiveProperty(c.Request.Context(), id, *req.IsActive)
		respond(c, property, err)
	}
}

/*
	units
*/

func listUnitsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		units, err := models.GetUnits(c.Request.Context(), intQuery(c, "property_id"))
		respond(c, units, err)
	}
}

func createUnitHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewUnit
		if !bindJSON(c, &input) {
			return
		}
		unit, err := models.CreateUnit(c.Request.Context(), &input)
		respond(c, unit, err)
	}
}

func getUnitHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		unit, err := models.GetUnit(c.Request.Context(), id)
		respond(c, unit, err)
	}
}

func updateUnitHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		var input models.NewUnit
		if !bindJSON(c, &input) {
			return
		}
		unit, err := models.UpdateUnit(c.Request.Context(), id, &input)
		respond(c, unit, err)
	}
}

type unitStatusRequest struct {
	Status models.UnitStatus `json:"status" binding:"required"`
}

func setUnitStatusHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		var req unitStatusRequest
		if !bindJSON(c, &req) {
			return
		}
		unit, err := models.SetUnitStatus(c.Request.Context(), id, req.Status)
		respond(c, unit, err)
	}
}

func deleteUnitHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		unit, err := models.DeleteUnit(c.Request.Context(), id)
		respond(c, unit, err)
	}
}

/*
	tenants
*/

func listTenantsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		tenants, err := models.GetTenants(c.Request.Context())
		respond(c, tenants, err)
	}
}

func createTenantHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewTenant
		if !bindJSON(c, &input) {
			return
		}
		tenant, err := models.CreateTenant(c.Request.Context(), &input)
		respond(c, tenant, err)
	}
}

func getTenantHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		tenant, err := models.GetTenant(c.Request.Context(), id)
		respond(c, tenant, err)
	}
}

func updateTenantHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		var input models.NewTenant
		if !bindJSON(c, &input) {
			return
		}
		tenant, err := models.UpdateTenant(c.Request.Context(), id, &input)
		respond(c, tenant, err)
	}
}

func deleteTenantHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		tenant, err := models.DeleteTenant(c.Request.Context(), id)
		respond(c, tenant, err)
	}
}

func toggleTenantHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		var req toggleActiveRequest
		if !bindJSON(c, &req) {
			return
		}
		tenant, err := models.ToggleActiveTenant(c.Request.Context(), id, *req.IsActive)
		respond(c, tenant, err)
	}
}

/*
	vendors
*/

func listVendorsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		vendors, err := models.GetVendors(c.Request.Context())
		respond(c, vendors, err)
	}
}

func createVendorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewVendor
		if !bindJSON(c, &input) {
			return
		}
		vendor, err := models.CreateVendor(c.Request.Context(), &input)
		respond(c, vendor, err)
	}
}

func getVendorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		vendor, err := models.GetVendor(c.Request.Context(), id)
		respond(c, vendor, err)
	}
}

func updateVendorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		var input models.NewVendor
		if !bindJSON(c, &input) {
			return
		}
		vendor, err := models.UpdateVendor(c.Request.Context(), id, &input)
		respond(c, vendor, err)
	}
}

func deleteVendorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		vendor, err := models.DeleteVendor(c.Request.Context(), id)
		respond(c, vendor, err)
	}
}

func toggleVendorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		var req toggleActiveRequest
		if !bindJSON(c, &req) {
			return
		}
		vendor, err := models.ToggleActiveVendor(c.Request.Context(), id, *req.IsActive)
		respond(c, vendor, err)
	}
}

/*
	categories
*/

func listCategoriesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var categoryType *models.TransactionType
		if v := strings.TrimSpace(c.Query("type")); v != "" {
			t := models.TransactionType(v)
			categoryType = &t
		}
		categories, err := models.GetTransactionCategories(c.Request.Context(), categoryType)
		respond(c, categories, err)
	}
}

func createCategoryHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewTransactionCategory
		if !bindJSON(c, &input) {
			return
		}
		category, err := models.CreateTransactionCategory(c.Request.Context(), &input)
		respond(c, category, err)
	}
}

func updateCategoryHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		var input models.NewTransactionCategory
		if !bindJSON(c, &input) {
			return
		}
		category, err := models.UpdateTransactionCategory(c.Request.Context(), id, &input)
		respond(c, category, err)
	}
}

func deleteCategoryHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		category, err := models.DeleteTransactionCategory(c.Request.Context(), id)
		respond(c, category, err)
	}
}

func toggleCategoryHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		var req toggleActiveRequest
		if !bindJSON(c, &req) {
			return
		}
		category, err := models.ToggleActiveTransactionCategory(c.Request.Context(), id, *req.IsActive)
		respond(c, category, err)
	}
}

/*
	leases
*/

func listLeasesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var status *models.LeaseStatus
		if v := strings.TrimSpace(c.Query("status")); v != "" {
			s := models.LeaseStatus(v)
			status = &s
		}
		leases, err := models.GetLeases(c.Request.Context(), intQuery(c, "property_id"), status)
		respond(c, leases, err)
	}
}

func createLeaseHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewLease
		if !bindJSON(c, &input) {
			return
		}
		lease, err := models.CreateLease(c.Request.Context(), &input)
		respond(c, lease, err)
	}
}

func getLeaseHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		lease, err := models.GetLease(c.Request.Context(), id)
		respond(c, lease, err)
	}
}

func updateLeaseHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		var input models.NewLease
		if !bindJSON(c, &input) {
			return
		}
		lease, err := models.UpdateLease(c.Request.Context(), id, &input)
		respond(c, lease, err)
	}
}

func terminateLeaseHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		lease, err := models.TerminateLease(c.Request.Context(), id)
		respond(c, lease, err)
	}
}

type renewLeaseRequest struct {
	EndDate    models.MyDateString `json:"end_date" binding:"required"`
	RentAmount *decimal.Decimal    `json:"rent_amount"`
}

func expireLeaseHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		lease, err := models.ExpireLease(c.Request.Context(), id)
		respond(c, lease, err)
	}
}

func renewLeaseHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		var req renewLeaseRequest
		if !bindJSON(c, &req) {
			return
		}
		lease, err := models.RenewLease(c.Request.Context(), id, req.EndDate.ToTime(), req.RentAmount)
		respond(c, lease, err)
	}
}

/*
	transactions
*/

func transactionFilterFromQuery(c *gin.Context) *models.TransactionFilter {
	filter := models.TransactionFilter{
		PropertyId: utils.DereferencePtr(intQuery(c, "property_id"), 0),
		UnitId:     utils.DereferencePtr(intQuery(c, "unit_id"), 0),
		TenantId:   utils.DereferencePtr(intQuery(c, "tenant_id"), 0),
		VendorId:   utils.DereferencePtr(intQuery(c, "vendor_id"), 0),
		CategoryId: utils.DereferencePtr(intQuery(c, "category_id"), 0),
	}
	if v := strings.TrimSpace(c.Query("type")); v != "" {
		t := models.TransactionType(v)
		filter.Type = &t
	}
	for _, v := range strings.Split(c.Query("statuses"), ",") {
		if v = strings.TrimSpace(v); v != "" {
			filter.Statuses = append(filter.Statuses, models.TransactionStatus(v))
		}
	}
	if d, ok := dateQuery(c, "from_date"); ok {
		filter.FromDate = &d
	}
	if d, ok := dateQuery(c, "to_date"); ok {
		filter.ToDate = &d
	}
	return &filter
}

func listTransactionsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		transactions, err := models.ListTransactions(c.Request.Context(), transactionFilterFromQuery(c))
		respond(c, transactions, err)
	}
}

func paginateTransactionsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := utils.DereferencePtr(intQuery(c, "limit"), 20)
		var after *string
		if v := strings.TrimSpace(c.Query("after")); v != "" {
			after = &v
		}
		edges, pageInfo, err := models.PaginateTransaction(c.Request.Context(), transactionFilterFromQuery(c), limit, after)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": gin.H{"edges": edges, "page_info": pageInfo}})
	}
}

func createTransactionHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewTransaction
		if !bindJSON(c, &input) {
			return
		}
		transaction, err := models.CreateTransaction(c.Request.Context(), &input)
		respond(c, transaction, err)
	}
}

func getTransactionHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		transaction, err := models.GetTransaction(c.Request.Context(), id)
		respond(c, transaction, err)
	}
}

func updateTransactionHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		var input models.NewTransaction
		if !bindJSON(c, &input) {
			return
		}
		transaction, err := models.UpdateTransaction(c.Request.Context(), id, &input)
		respond(c, transaction, err)
	}
}

func deleteTransactionHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		transaction, err := models.DeleteTransaction(c.Request.Context(), id)
		respond(c, transaction, err)
	}
}

type markPaidRequest struct {
	PaidDate *models.MyDateString `json:"paid_date"`
}

func markTransactionPaidHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		var req markPaidRequest
		if !bindJSON(c, &req) {
			return
		}
		transaction, err := models.MarkTransactionPaid(c.Request.Context(), id, req.PaidDate)
		respond(c, transaction, err)
	}
}

func cancelTransactionHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		transaction, err := models.CancelTransaction(c.Request.Context(), id)
		respond(c, transaction, err)
	}
}

func markOverdueHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		asOf, ok := dateQuery(c, "as_of")
		if !ok {
			asOf = models.NowDateString()
		}
		count, err := models.MarkOverdueTransactions(c.Request.Context(), asOf.ToTime())
		respond(c, gin.H{"updated": count}, err)
	}
}

/*
	inspections
*/

func listInspectionsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var status *models.InspectionStatus
		if v := strings.TrimSpace(c.Query("status")); v != "" {
			s := models.InspectionStatus(v)
			status = &s
		}
		inspections, err := models.GetInspections(c.Request.Context(), intQuery(c, "property_id"), status)
		respond(c, inspections, err)
	}
}

func createInspectionHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewInspection
		if !bindJSON(c, &input) {
			return
		}
		inspection, err := models.CreateInspection(c.Request.Context(), &input)
		respond(c, inspection, err)
	}
}

func getInspectionHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		inspection, err := models.GetInspection(c.Request.Context(), id)
		respond(c, inspection, err)
	}
}

func updateInspectionHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		var input models.NewInspection
		if !bindJSON(c, &input) {
			return
		}
		inspection, err := models.UpdateInspection(c.Request.Context(), id, &input)
		respond(c, inspection, err)
	}
}

type completeInspectionRequest struct {
	Summary string `json:"summary"`
}

func completeInspectionHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		var req completeInspectionRequest
		if !bindJSON(c, &req) {
			return
		}
		inspection, err := models.CompleteInspection(c.Request.Context(), id, req.Summary)
		respond(c, inspection, err)
	}
}

func cancelInspectionHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		inspection, err := models.CancelInspection(c.Request.Context(), id)
		respond(c, inspection, err)
	}
}

func deleteInspectionPhotoHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		photoId, err := strconv.Atoi(c.Param("photoId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid photo id"})
			return
		}
		if err := models.DeleteInspectionPhoto(c.Request.Context(), id, photoId); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
	}
}

/*
	reports
*/

func reportDate(c *gin.Context) models.MyDateString {
	if d, ok := dateQuery(c, "date"); ok {
		return d
	}
	return models.NowDateString()
}

func receivableAgingHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		report, err := reports.GetReceivableAgingReport(c.Request.Context(), reportDate(c), intQuery(c, "property_id"))
		respond(c, report, err)
	}
}

func payableAgingHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		report, err := reports.GetPayableAgingReport(c.Request.Context(), reportDate(c), intQuery(c, "property_id"))
		respond(c, report, err)
	}
}

func incomeStatementHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		// period is a named-range shortcut (thisMonth, thisQuarter,
		// thisFiscalYear, ...) anchored to the business fiscal year;
		// explicit from_date/to_date take precedence.
		fromDate, fromOk := dateQuery(c, "from_date")
		toDate, toOk := dateQuery(c, "to_date")
		if !fromOk || !toOk {
			period := strings.TrimSpace(c.Query("period"))
			if period == "" {
				c.JSON(http.StatusBadRequest, gin.H{"error": "from_date and to_date (or period) are required"})
				return
			}
			business, err := models.GetBusiness(c.Request.Context())
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			startMonth, err := utils.GetFiscalYearStartMonth(business.FiscalYear)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			start, end, err := utils.GetStartAndEndDateWithBusinessFiscalYear(startMonth, period)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			fromDate = models.MyDateString(start)
			toDate = models.MyDateString(end)
		}
		report, err := reports.GetIncomeStatementReport(c.Request.Context(), fromDate, toDate, intQuery(c, "property_id"))
		respond(c, report, err)
	}
}

func balanceSheetHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		report, err := reports.GetBalanceSheetReport(c.Request.Context(), reportDate(c), intQuery(c, "property_id"))
		respond(c, report, err)
	}
}

func vacancyLossHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		fromDate, ok := dateQuery(c, "from_date")
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "from_date is required"})
			return
		}
		toDate, ok := dateQuery(c, "to_date")
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "to_date is required"})
			return
		}
		report, err := reports.GetVacancyLossReport(c.Request.Context(), fromDate, toDate, intQuery(c, "property_id"))
		respond(c, report, err)
	}
}

func leaseRenewalHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		horizon := utils.DereferencePtr(intQuery(c, "horizon_days"), 90)
		report, err := reports.GetLeaseRenewalReport(c.Request.Context(), reportDate(c), horizon, intQuery(c, "property_id"))
		respond(c, report, err)
	}
}

func exportAgingExcelHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		reportType := strings.TrimSpace(c.Query("type"))
		if err := reports.ExportAgingReportExcel(c.Request.Context(), c.Writer, reportType, reportDate(c), intQuery(c, "property_id")); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
	}
}
