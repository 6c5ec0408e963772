//go:build integration
// +build integration

package connector

import "github.com/Photic23/rsa-oaep/internal/pkg/config"

// TestCloudProvider is the default cloud provider for tests
const TestCloudProvider = config.AzureCloudProvider

// TestConnectionString points at a local Azurite emulator
const TestConnectionString = "DefaultEndpointsProtocol=http;AccountName=devstoreaccount1;AccountKey=Eby8vdM02xNOcqFlqUwJPLlmEtlCDXJ1OUzFT50uSRZ6IFsuFq2UVErCz4I6tq/K1SZFPTOtr/KBHBeksoGMGw==;BlobEndpoint=http://127.0.0.1:10000/devstoreaccount1;"

// TestContainerName is the default test container name
const TestContainerName = "rsa-oaep-test-keys"
