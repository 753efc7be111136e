package main

import (
    "log"

    "backend/config"
    "backend/routes"
    "backend/services"
    "backend/storage"
    "backend/utils"
)

func main() {
    cfg := config.Load()

    db, err := config.OpenDB(cfg)
    if err != nil {
        log.Fatalf("database init: %v", err)
    }

    store := storage.NewGormStore(db)
    jwtMgr := utils.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
    hub := services.NewRealtimeHub()

    r := routes.SetupRouter(routes.Deps{
        Auth:      services.NewAuthService(store, jwtMgr),
        Users:     services.NewUserService(store),
        Drinks:    services.NewDrinkService(store, jwtMgr, hub),
        Cocktails: services.NewCocktailService(),
        Hub:       hub,
        Verifier:  jwtMgr,
    })
    r.Run(":" + cfg.Port)
}
