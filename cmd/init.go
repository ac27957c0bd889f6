package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create an example schema.yaml to start from",
	Long: `Create an example schema.yaml in the current directory.

The example defines a users/posts/tags schema covering the common cases:
UUID primary keys, VARCHAR lengths, foreign keys, a many-to-many
relationship, soft delete, timestamps and a row-level-security policy.

Examples:
  schemagen init
  schemagen generate -f schema.yaml -o generated/`,
	Run: func(cmd *cobra.Command, args []string) {
		if _, err := os.Stat("schema.yaml"); err == nil {
			fmt.Println("❌ schema.yaml already exists!")
			return
		}

		content := `# schemagen schema definition
entities:
  - name: users
    description: registered application users
    timestamps: true
    softDelete: true
    rlsEnabled: true
    fields:
      - name: id
        type: UUID
        primaryKey: true
      - name: email
        type: VARCHAR
        length: 255
        unique: true
        nullable: false
      - name: name
        type: VARCHAR
        length: 120
        nullable: false
      - name: bio
        type: TEXT
      - name: settings
        type: JSONB
    rlsPolicies:
      - name: users_self_select
        operation: SELECT
        using: id = auth.uid()
      - name: users_self_update
        operation: UPDATE
        using: id = auth.uid()

  - name: posts
    description: blog posts written by users
    timestamps: true
    fields:
      - name: id
        type: UUID
        primaryKey: true
      - name: title
        type: VARCHAR
        length: 200
        nullable: false
      - name: body
        type: TEXT
        nullable: false
      - name: view_count
        type: INTEGER
        defaultValue: "0"
      - name: author_id
        type: UUID
        nullable: false
        foreignKey: users.id
        onDelete: CASCADE
        indexed: true

  - name: tags
    fields:
      - name: id
        type: UUID
        primaryKey: true
      - name: label
        type: VARCHAR
        length: 64
        unique: true
        nullable: false

relationships:
  - fromEntity: posts
    toEntity: tags
    type: MANY_TO_MANY
`
		if err := os.WriteFile("schema.yaml", []byte(content), 0644); err != nil {
			fmt.Println("❌ Error creating schema.yaml:", err)
			return
		}
		fmt.Println("✅ Created schema.yaml example file.")
		fmt.Println("📝 Edit schema.yaml to define your entities")
		fmt.Println("🚀 Run 'schemagen generate -f schema.yaml' to generate artifacts")
	},
}
