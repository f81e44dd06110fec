package community

import (
	"github.com/gofiber/fiber/v2"

	"github.com/curalink/curalink-server/db"
	"github.com/curalink/curalink-server/models"
)

// CreateForum opens a new discussion forum
func CreateForum(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	type ForumInput struct {
		Category    string `json:"category"`
		Title       string `json:"title"`
		Description string `json:"description"`
	}

	input := new(ForumInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if input.Category == "" || input.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "category and title are required",
		})
	}

	forum := models.Forum{
		Category:    input.Category,
		Title:       input.Title,
		Description: input.Description,
		CreatedBy:   userID,
	}
	if err := db.DB.Create(&forum).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create forum",
		})
	}

	return c.JSON(fiber.Map{"id": forum.ID})
}

// ListForums returns forums, optionally filtered by category
func ListForums(c *fiber.Ctx) error {
	category := c.Query("category")

	query := db.DB.Model(&models.Forum{})
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var forums []models.Forum
	if err := query.Find(&forums).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch forums",
		})
	}

	result := []fiber.Map{}
	for _, f := range forums {
		result = append(result, fiber.Map{
			"id":          f.ID,
			"category":    f.Category,
			"title":       f.Title,
			"description": f.Description,
		})
	}

	return c.JSON(result)
}

// CreatePost adds a post to a forum. ParentID links a reply to an
// earlier post and is not validated at write time.
func CreatePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	type PostInput struct {
		ForumID  uint   `json:"forum_id"`
		Content  string `json:"content"`
		ParentID *uint  `json:"parent_id"`
	}

	input := new(PostInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if input.ForumID == 0 || input.Content == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "forum_id and content are required",
		})
	}

	post := models.ForumPost{
		ForumID:  input.ForumID,
		UserID:   userID,
		Content:  input.Content,
		ParentID: input.ParentID,
	}
	if err := db.DB.Create(&post).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create post",
		})
	}

	return c.JSON(fiber.Map{"id": post.ID})
}

// ListPosts returns every post in a forum in creation order
func ListPosts(c *fiber.Ctx) error {
	forumID := c.Params("id")

	var posts []models.ForumPost
	if err := db.DB.Where("forum_id = ?", forumID).
		Order("created_at").Find(&posts).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch posts",
		})
	}

	result := []fiber.Map{}
	for _, p := range posts {
		result = append(result, fiber.Map{
			"id":         p.ID,
			"user_id":    p.UserID,
			"content":    p.Content,
			"parent_id":  p.ParentID,
			"created_at": p.CreatedAt,
		})
	}

	return c.JSON(result)
}
