package controller

import (
	"net/http"

	"shopfront/logger"
	"shopfront/web/forms"
	"shopfront/web/service"
	"shopfront/web/session"

	"github.com/gin-gonic/gin"
)

// IndexController handles the public storefront and the register/login/
// logout/profile routes.
type IndexController struct {
	BaseController

	catalogService service.CatalogService
	settingService service.SettingService
}

func NewIndexController(g *gin.RouterGroup) *IndexController {
	a := &IndexController{}
	a.initRouter(g)
	return a
}

func (a *IndexController) initRouter(g *gin.RouterGroup) {
	g.GET("/", a.home)

	g.GET("/register", a.redirectIfLoggedIn, a.registerForm)
	g.POST("/register", a.redirectIfLoggedIn, a.register)
	g.GET("/login", a.redirectIfLoggedIn, a.loginForm)
	g.POST("/login", a.redirectIfLoggedIn, a.login)

	g.GET("/logout", a.checkLogin, a.logout)
	g.GET("/profile", a.checkLogin, a.profile)
}

// redirectIfLoggedIn keeps the register/login pages anonymous-only.
func (a *IndexController) redirectIfLoggedIn(c *gin.Context) {
	if a.currentUser(c) != nil {
		c.Redirect(http.StatusFound, "/")
		c.Abort()
		return
	}
	c.Next()
}

// home serves the catalog together with the latest broadcasts and any
// pending one-shot notices.
func (a *IndexController) home(c *gin.Context) {
	products, err := a.catalogService.ListProducts()
	if err != nil {
		jsonMsg(c, "load products", err)
		return
	}
	limit, err := a.settingService.GetHomeBroadcasts()
	if err != nil {
		jsonMsg(c, "load settings", err)
		return
	}
	broadcasts, err := a.catalogService.ListRecentBroadcasts(limit)
	if err != nil {
		jsonMsg(c, "load broadcasts", err)
		return
	}
	jsonObj(c, gin.H{
		"products":   products,
		"broadcasts": broadcasts,
		"flashes":    session.TakeFlashes(c),
	}, nil)
}

func (a *IndexController) registerForm(c *gin.Context) {
	jsonObj(c, gin.H{
		"fields":  []string{"username", "email", "password", "confirm_password"},
		"flashes": session.TakeFlashes(c),
	}, nil)
}

func (a *IndexController) register(c *gin.Context) {
	var form forms.RegisterForm
	if err := c.ShouldBind(&form); err != nil {
		pureJsonMsg(c, http.StatusBadRequest, false, "invalid form data")
		return
	}
	if errs := form.Validate(); errs != nil {
		jsonFieldErrors(c, errs)
		return
	}

	user, err := a.userService.Register(form.Username, form.Email, form.Password)
	if err == service.ErrDuplicateUser {
		jsonFieldErrors(c, map[string]string{"email": "Username or email already taken."})
		return
	} else if err != nil {
		jsonMsg(c, "register", err)
		return
	}

	logger.Infof("new user registered: %s", user.Username)
	session.AddFlash(c, "Your account has been created! Please log in.")
	c.Redirect(http.StatusSeeOther, "/login")
}

func (a *IndexController) loginForm(c *gin.Context) {
	jsonObj(c, gin.H{
		"fields":  []string{"email", "password"},
		"flashes": session.TakeFlashes(c),
	}, nil)
}

// login verifies credentials and binds the session. The failure notice does
// not reveal whether the email exists, and the password is never logged.
func (a *IndexController) login(c *gin.Context) {
	var form forms.LoginForm
	if err := c.ShouldBind(&form); err != nil {
		pureJsonMsg(c, http.StatusBadRequest, false, "invalid form data")
		return
	}
	if errs := form.Validate(); errs != nil {
		jsonFieldErrors(c, errs)
		return
	}

	user := a.userService.CheckUser(form.Email, form.Password)
	if user == nil {
		logger.Warningf("failed login for %q, IP: %q", form.Email, getRemoteIp(c))
		pureJsonMsg(c, http.StatusUnauthorized, false, "Login failed! Please check your email and password.")
		return
	}

	sessionMaxAge, err := a.settingService.GetSessionMaxAge()
	if err != nil {
		logger.Warning("unable to get session max age:", err)
	} else {
		session.SetMaxAge(c, sessionMaxAge*60)
	}
	if err := session.SetLoginUser(c, user); err != nil {
		jsonMsg(c, "login", err)
		return
	}

	logger.Infof("%s logged in successfully, IP: %s", user.Username, getRemoteIp(c))
	c.Redirect(http.StatusSeeOther, safeNextPath(c.Query("next")))
}

func (a *IndexController) logout(c *gin.Context) {
	user := loginUser(c)
	if user != nil {
		logger.Infof("%s logged out", user.Username)
	}
	if err := session.ClearSession(c); err != nil {
		logger.Warning("unable to clear session:", err)
	}
	c.Redirect(http.StatusFound, "/")
}

func (a *IndexController) profile(c *gin.Context) {
	jsonObj(c, loginUser(c), nil)
}
