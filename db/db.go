package db

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	UserCollection         *mongo.Collection
	EmployeeCollection     *mongo.Collection
	StoreCollection        *mongo.Collection
	DishCollection         *mongo.Collection
	ToppingGroupCollection *mongo.Collection
	CategoryCollection     *mongo.Collection
	FoodTypeCollection     *mongo.Collection
	StaffCollection        *mongo.Collection
	CartCollection         *mongo.Collection
	OrderCollection        *mongo.Collection
	RatingCollection       *mongo.Collection
	FavoriteCollection     *mongo.Collection
	ChatCollection         *mongo.Collection
	MessageCollection      *mongo.Collection
	Client                 *mongo.Client
)

// Initialize MongoDB connection
func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}
	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "savora"
	}

	clientOptions := options.Client().ApplyURI(uri)
	var err error
	Client, err = mongo.Connect(context.TODO(), clientOptions)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	database := Client.Database(dbName)
	UserCollection = database.Collection("users")
	EmployeeCollection = database.Collection("employees")
	StoreCollection = database.Collection("stores")
	DishCollection = database.Collection("dishes")
	ToppingGroupCollection = database.Collection("toppinggroups")
	CategoryCollection = database.Collection("categories")
	FoodTypeCollection = database.Collection("foodtypes")
	StaffCollection = database.Collection("staffs")
	CartCollection = database.Collection("carts")
	OrderCollection = database.Collection("orders")
	RatingCollection = database.Collection("ratings")
	FavoriteCollection = database.Collection("favorites")
	ChatCollection = database.Collection("chats")
	MessageCollection = database.Collection("messages")
}
