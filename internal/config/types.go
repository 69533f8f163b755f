package config

// CerditoConfig is the top-level configuration structure for cerdito.
//
// Every section is optional. Credentials are pointers so that an absent value
// (nil) can be told apart from an empty one (""); resource lists are nil when
// the key is missing from the document.
type CerditoConfig struct {
	Atlas      AtlasConfig      `yaml:"atlas"`
	Azure      AzureConfig      `yaml:"azure"`
	Kubernetes KubernetesConfig `yaml:"kubernetes"`
}

// AtlasCluster addresses one MongoDB Atlas cluster.
type AtlasCluster struct {
	Name    string `yaml:"name"`
	GroupID string `yaml:"groupId"` // Atlas project (group) the cluster lives in
}

// AtlasConfig holds the API key pair and the clusters to pause or resume.
type AtlasConfig struct {
	PublicKey  *string        `yaml:"publicKey,omitempty"`
	PrivateKey *string        `yaml:"privateKey,omitempty"`
	Clusters   []AtlasCluster `yaml:"clusters,omitempty"`
}

// AKSCluster addresses one Azure managed Kubernetes cluster.
type AKSCluster struct {
	SubscriptionID    string `yaml:"subscriptionId"`
	ResourceGroupName string `yaml:"resourceGroupName"`
	ResourceName      string `yaml:"resourceName"`
}

// DatabricksWorkspace declares which jobs of a Databricks workspace are managed.
type DatabricksWorkspace struct {
	URL     string   `yaml:"url"`
	AllJobs bool     `yaml:"allJobs,omitempty"` // when true Jobs is ignored
	Jobs    []string `yaml:"jobs,omitempty"`
}

// AzureConfig holds the service principal shared by the AKS and Databricks
// backends together with their resource lists.
type AzureConfig struct {
	TenantID     *string               `yaml:"tenantId,omitempty"`
	ClientID     *string               `yaml:"clientId,omitempty"`
	ClientSecret *string               `yaml:"clientSecret,omitempty"`
	AKS          []AKSCluster          `yaml:"aks,omitempty"`
	Databricks   []DatabricksWorkspace `yaml:"databricks,omitempty"`
}

// KubernetesProject lists the deployments to scale inside one namespace.
type KubernetesProject struct {
	Namespace   string   `yaml:"namespace"`
	Deployments []string `yaml:"deployments"`
}

// KubernetesConfig holds the kubeconfig location and the projects to scale.
type KubernetesConfig struct {
	Kubeconfig *string             `yaml:"kubeconfig,omitempty"`
	Projects   []KubernetesProject `yaml:"projects,omitempty"`
}
