package controller

import (
	"net/http"

	"shopfront/database/model"
	"shopfront/logger"
	"shopfront/web/forms"
	"shopfront/web/service"
	"shopfront/web/session"

	"github.com/gin-gonic/gin"
)

// AdminController orchestrates the management workflows: product creation
// with image upload and broadcast publishing. Every route is behind the
// checkLogin + checkAdmin guards.
type AdminController struct {
	BaseController

	catalogService service.CatalogService
	uploadService  service.UploadService
}

func NewAdminController(g *gin.RouterGroup) *AdminController {
	a := &AdminController{}
	a.initRouter(g)
	return a
}

func (a *AdminController) initRouter(g *gin.RouterGroup) {
	admin := g.Group("/admin")
	admin.Use(a.checkLogin, a.checkAdmin)

	admin.GET("/dashboard", a.dashboard)
	admin.GET("/products", a.products)
	admin.GET("/add_product", a.addProductForm)
	admin.POST("/add_product", a.addProduct)
	admin.GET("/broadcast", a.broadcastForm)
	admin.POST("/broadcast", a.broadcast)
}

func (a *AdminController) dashboard(c *gin.Context) {
	productCount, err := a.catalogService.CountProducts()
	if err != nil {
		jsonMsg(c, "load dashboard", err)
		return
	}
	broadcastCount, err := a.catalogService.CountBroadcasts()
	if err != nil {
		jsonMsg(c, "load dashboard", err)
		return
	}
	broadcasts, err := a.catalogService.ListRecentBroadcasts(3)
	if err != nil {
		jsonMsg(c, "load dashboard", err)
		return
	}
	jsonObj(c, gin.H{
		"products":   productCount,
		"broadcasts": broadcastCount,
		"recent":     broadcasts,
		"flashes":    session.TakeFlashes(c),
	}, nil)
}

func (a *AdminController) products(c *gin.Context) {
	products, err := a.catalogService.ListProducts()
	if err != nil {
		jsonMsg(c, "load products", err)
		return
	}
	jsonObj(c, gin.H{
		"products": products,
		"flashes":  session.TakeFlashes(c),
	}, nil)
}

func (a *AdminController) addProductForm(c *gin.Context) {
	jsonObj(c, gin.H{
		"fields":     []string{"name", "description", "price", "category", "image"},
		"categories": model.Categories(),
	}, nil)
}

// addProduct creates a product from a multipart form. The image is optional;
// a missing or disallowed file degrades to the placeholder image.
func (a *AdminController) addProduct(c *gin.Context) {
	var form forms.ProductForm
	if err := c.ShouldBind(&form); err != nil {
		pureJsonMsg(c, http.StatusBadRequest, false, "invalid form data")
		return
	}
	if errs := form.Validate(); errs != nil {
		jsonFieldErrors(c, errs)
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		// No file field in the form.
		file = nil
	}
	filename, err := a.uploadService.Store(file)
	if err != nil {
		jsonMsg(c, "store image", err)
		return
	}

	product, err := a.catalogService.CreateProduct(
		form.Name, form.Description, form.Price, model.Category(form.Category), filename)
	if err != nil {
		jsonMsg(c, "add product", err)
		return
	}

	logger.Infof("product %q added by %s", product.Name, loginUser(c).Username)
	session.AddFlash(c, "Product added successfully!")
	c.Redirect(http.StatusSeeOther, "/admin/products")
}

func (a *AdminController) broadcastForm(c *gin.Context) {
	jsonObj(c, gin.H{
		"fields": []string{"message"},
	}, nil)
}

func (a *AdminController) broadcast(c *gin.Context) {
	var form forms.BroadcastForm
	if err := c.ShouldBind(&form); err != nil {
		pureJsonMsg(c, http.StatusBadRequest, false, "invalid form data")
		return
	}
	if errs := form.Validate(); errs != nil {
		jsonFieldErrors(c, errs)
		return
	}

	if _, err := a.catalogService.CreateBroadcast(form.Message); err != nil {
		jsonMsg(c, "publish broadcast", err)
		return
	}

	logger.Infof("broadcast published by %s", loginUser(c).Username)
	session.AddFlash(c, "Broadcast published successfully!")
	c.Redirect(http.StatusSeeOther, "/admin/dashboard")
}
