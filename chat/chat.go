package chat

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sort"
	"time"

	"savora/db"
	"savora/models"
	"savora/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const handlerTimeout = 10 * time.Second

// InitChat finds or creates the conversation between the caller and another
// user. The user pair is stored sorted so the same two people always map to
// the same document.
func InitChat(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var body struct {
		UserID string `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.UserID == "" {
		utils.RespondError(w, http.StatusBadRequest, "userId is required")
		return
	}
	if _, ok := utils.ParseObjectID(body.UserID); !ok {
		utils.RespondError(w, http.StatusBadRequest, "Invalid user ID format")
		return
	}
	if body.UserID == userID {
		utils.RespondError(w, http.StatusBadRequest, "Cannot start a chat with yourself")
		return
	}

	pair := []string{userID, body.UserID}
	sort.Strings(pair)

	var chat models.Chat
	err := db.ChatCollection.FindOne(ctx, bson.M{"users": pair}).Decode(&chat)
	if err == mongo.ErrNoDocuments {
		chat = models.Chat{
			ID:        primitive.NewObjectID(),
			Users:     pair,
			UpdatedAt: time.Now(),
		}
		if _, err := db.ChatCollection.InsertOne(ctx, chat); err != nil {
			log.Println("InitChat insert error:", err)
			utils.RespondError(w, http.StatusInternalServerError, "Could not create chat")
			return
		}
		utils.RespondSuccess(w, http.StatusCreated, "Chat created", chat)
		return
	}
	if err != nil {
		log.Println("InitChat find error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Could not retrieve chat")
		return
	}

	utils.RespondSuccess(w, http.StatusOK, "", chat)
}

// GetUserChats lists the caller's conversations, most recent first.
func GetUserChats(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	findOpts := options.Find().SetSort(bson.M{"updatedAt": -1})
	chats, err := utils.FindAndDecode[models.Chat](ctx, db.ChatCollection, bson.M{"users": userID}, findOpts)
	if err != nil {
		log.Println("GetUserChats find error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Could not retrieve chats")
		return
	}

	utils.RespondSuccess(w, http.StatusOK, "", chats)
}

// GetChatMessages returns the chat plus its messages, oldest first. Only
// members may read.
func GetChatMessages(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	chatID, ok := utils.ParseObjectID(ps.ByName("chat_id"))
	if !ok {
		utils.RespondError(w, http.StatusBadRequest, "Invalid chat ID format")
		return
	}

	var chat models.Chat
	err := db.ChatCollection.FindOne(ctx, bson.M{"_id": chatID, "users": userID}).Decode(&chat)
	if err == mongo.ErrNoDocuments {
		utils.RespondError(w, http.StatusNotFound, "Chat not found")
		return
	}
	if err != nil {
		log.Println("GetChatMessages chat error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Could not retrieve chat")
		return
	}

	findOpts := options.Find().SetSort(bson.M{"createdAt": 1})
	messages, err := utils.FindAndDecode[models.Message](ctx, db.MessageCollection, bson.M{"chatid": chatID.Hex()}, findOpts)
	if err != nil {
		log.Println("GetChatMessages find error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Could not retrieve messages")
		return
	}

	utils.RespondSuccess(w, http.StatusOK, "", utils.M{"chat": chat, "messages": messages})
}

// SendMessage stores a message over REST, for clients without a socket.
func SendMessage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	chatID, ok := utils.ParseObjectID(ps.ByName("chat_id"))
	if !ok {
		utils.RespondError(w, http.StatusBadRequest, "Invalid chat ID format")
		return
	}

	var body struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Content == "" {
		utils.RespondError(w, http.StatusBadRequest, "Message content is required")
		return
	}

	err := db.ChatCollection.FindOne(ctx, bson.M{"_id": chatID, "users": userID}).Err()
	if err == mongo.ErrNoDocuments {
		utils.RespondError(w, http.StatusNotFound, "Chat not found")
		return
	}
	if err != nil {
		log.Println("SendMessage chat error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Could not send message")
		return
	}

	msg, err := storeMessage(chatID.Hex(), userID, body.Content)
	if err != nil {
		log.Println("SendMessage insert error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Could not send message")
		return
	}

	utils.RespondSuccess(w, http.StatusCreated, "", msg)
}

// DeleteMessage removes one of the caller's own messages.
func DeleteMessage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := deleteMessage(userID, ps.ByName("id")); err != nil {
		utils.RespondError(w, http.StatusNotFound, "Message not found")
		return
	}

	utils.RespondSuccess(w, http.StatusOK, "Message deleted", nil)
}

// storeMessage persists a message and refreshes the chat preview.
func storeMessage(chatHex, userID, content string) (models.Message, error) {
	ctx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
	defer cancel()

	msg := models.Message{
		ID:        primitive.NewObjectID(),
		ChatID:    chatHex,
		UserID:    userID,
		Text:      content,
		CreatedAt: time.Now(),
	}
	if _, err := db.MessageCollection.InsertOne(ctx, msg); err != nil {
		return models.Message{}, err
	}

	if chatID, ok := utils.ParseObjectID(chatHex); ok {
		update := bson.M{"$set": bson.M{
			"lastMessage": models.MessagePreview{
				Text:      content,
				SenderID:  userID,
				Timestamp: msg.CreatedAt,
			},
			"updatedAt": msg.CreatedAt,
		}}
		if _, err := db.ChatCollection.UpdateOne(ctx, bson.M{"_id": chatID}, update); err != nil {
			log.Println("storeMessage preview error:", err)
		}
	}
	return msg, nil
}

func updateMessage(userID, msgHex, content string) error {
	msgID, ok := utils.ParseObjectID(msgHex)
	if !ok {
		return errors.New("invalid message id")
	}

	ctx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
	defer cancel()

	res, err := db.MessageCollection.UpdateOne(ctx,
		bson.M{"_id": msgID, "userId": userID},
		bson.M{"$set": bson.M{"text": content}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errors.New("message not found or not owned")
	}
	return nil
}

func deleteMessage(userID, msgHex string) error {
	msgID, ok := utils.ParseObjectID(msgHex)
	if !ok {
		return errors.New("invalid message id")
	}

	ctx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
	defer cancel()

	res, err := db.MessageCollection.DeleteOne(ctx, bson.M{"_id": msgID, "userId": userID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return errors.New("message not found or not owned")
	}
	return nil
}
