package apiclient

import "fmt"

// Generic helpers wrapping Client.get/post/delete with type-safe decoding.
// They are package-internal; each resource file exposes typed methods.

// getResource performs a GET request and decodes the response into T.
func getResource[T any](c *Client, path string) (*T, error) {
	var result T
	if err := c.get(path, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// listResources performs a GET request and decodes the response into []T.
func listResources[T any](c *Client, path string) ([]T, error) {
	var results []T
	if err := c.get(path, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// createResource performs a POST request and decodes the response into T.
func createResource[T any](c *Client, path string, body any) (*T, error) {
	var result T
	if err := c.post(path, body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// deleteResource performs a DELETE request.
func deleteResource(c *Client, path string) error {
	return c.delete(path, nil)
}

// resourcePath builds a resource path with fmt.Sprintf.
func resourcePath(format string, args ...any) string {
	return fmt.Sprintf(format, args...)
}
