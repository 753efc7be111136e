package routes

import (
    "net/http"

    "backend/controllers"
    "backend/middlewares"
    "backend/services"

    "github.com/gin-gonic/gin"
)

type Deps struct {
    Auth      *services.AuthService
    Users     *services.UserService
    Drinks    *services.DrinkService
    Cocktails *services.CocktailService
    Hub       *services.RealtimeHub
    Verifier  services.TokenVerifier
}

func SetupRouter(deps Deps) *gin.Engine {
    r := gin.Default()

    authCtl := controllers.NewAuthController(deps.Auth)
    userCtl := controllers.NewUserController(deps.Users)
    drinkCtl := controllers.NewDrinkController(deps.Drinks)
    cocktailCtl := controllers.NewCocktailController(deps.Cocktails)
    realtimeCtl := controllers.NewRealtimeController(deps.Hub)

    r.GET("/", func(c *gin.Context) {
        c.JSON(http.StatusOK, gin.H{"message": "Welcome to the Alcohol Tracking App API!"})
    })

    // Public auth routes
    auth := r.Group("/auth")
    {
        auth.POST("/register", authCtl.Register)
        auth.POST("/login", authCtl.Login)
    }

    // Drink logging carries its own credential; the service verifies it.
    r.POST("/drinks", drinkCtl.LogDrink)

    // Read-only leaderboard
    r.GET("/users", userCtl.Leaderboard)

    // Cocktail lookup
    r.GET("/cocktails/search", cocktailCtl.Search)

    // Protected user routes
    user := r.Group("/user")
    user.Use(middlewares.AuthMiddleware(deps.Verifier))
    {
        user.GET("/profile", userCtl.GetProfile)
        user.PUT("/profile", userCtl.UpdateProfile)
    }

    protected := r.Group("/")
    protected.Use(middlewares.AuthMiddleware(deps.Verifier))
    {
        protected.GET("/drinks", drinkCtl.GetHistory)
        protected.GET("/ws/metrics", realtimeCtl.MetricsWS)
    }

    return r
}
